package services

import (
	"fmt"
	"time"

	"devicestore/internal/models"
	"devicestore/internal/repositories"
)

// Actor identifies who is performing a storefront operation: an
// authenticated user, or an anonymous session holding a guest token.
type Actor struct {
	UserID     string
	GuestToken string
}

// OwnerID returns the identifier cart lines and guest orders are keyed
// by: the user ID when authenticated, the guest token otherwise.
func (a Actor) OwnerID() string {
	if a.UserID != "" {
		return a.UserID
	}
	return a.GuestToken
}

// CheckoutResult is what a successful checkout returns to the caller.
// Workflow reports the post-payment finalization outcome; checkout is
// reported as successful even when individual workflow steps failed.
type CheckoutResult struct {
	Order    *models.Order    `json:"order"`
	Payment  *models.Payment  `json:"payment"`
	Workflow *CheckoutOutcome `json:"workflow"`
}

// CheckoutService turns a cart into an order with a settled payment and
// hands off to the post-payment workflow.
type CheckoutService struct {
	cartRepo    repositories.CartRepository
	deviceRepo  repositories.DeviceRepository
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	logRepo     repositories.OrderLogRepository
	workflow    *WorkflowService
	publisher   EventPublisher
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(
	cartRepo repositories.CartRepository,
	deviceRepo repositories.DeviceRepository,
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	logRepo repositories.OrderLogRepository,
	workflow *WorkflowService,
	publisher EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		deviceRepo:  deviceRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		logRepo:     logRepo,
		workflow:    workflow,
		publisher:   publisher,
	}
}

// Checkout validates the payment form against the actor's cart, creates
// the order (status placed) with frozen line items and the payment record
// in one transaction, writes the audit entries, and runs the post-payment
// workflow.
//
// Stock was already reserved when the lines were added to the cart;
// checkout does not touch it.
func (s *CheckoutService) Checkout(actor Actor, form PaymentForm, meta models.RequestMeta) (*CheckoutResult, error) {
	lines, err := s.cartRepo.GetByOwner(actor.OwnerID())
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	// Freeze line items at the current catalog price.
	var subtotal float64
	items := make([]models.OrderItem, 0, len(lines))
	itemSummaries := make([]map[string]interface{}, 0, len(lines))
	for _, line := range lines {
		device, err := s.deviceRepo.GetByID(line.DeviceID)
		if err != nil {
			return nil, fmt.Errorf("device %s in cart: %w", line.DeviceID, err)
		}
		items = append(items, models.OrderItem{
			DeviceID:  device.ID,
			Quantity:  line.Quantity,
			UnitPrice: device.Price,
		})
		subtotal += device.Price * float64(line.Quantity)
		itemSummaries = append(itemSummaries, map[string]interface{}{
			"device_id":  device.ID,
			"name":       device.Name,
			"quantity":   line.Quantity,
			"unit_price": device.Price,
		})
	}

	if verr := validatePaymentForm(form, subtotal, time.Now()); verr != nil {
		return nil, verr
	}

	order := &models.Order{
		UserID:      actor.UserID,
		GuestToken:  actor.GuestToken,
		Items:       items,
		TotalAmount: subtotal,
		Status:      models.OrderPlaced,
	}
	payment := &models.Payment{
		UserID:    actor.UserID,
		Method:    form.Method,
		CardLast4: cardLast4(form.CardNumber),
		Amount:    form.Amount,
		PaidAt:    time.Now(),
	}
	if err := s.orderRepo.CreateWithPayment(order, payment); err != nil {
		return nil, err
	}

	appendOrderLog(s.logRepo, order.ID, actor.UserID, models.ActionOrderCreated, map[string]interface{}{
		"items": itemSummaries,
		"total": subtotal,
	}, meta)
	appendOrderLog(s.logRepo, order.ID, actor.UserID, models.ActionPaymentAdded, map[string]interface{}{
		"payment_id": payment.ID,
		"method":     payment.Method,
		"amount":     payment.Amount,
	}, meta)
	// Settlement is synchronous: confirmation follows creation immediately.
	appendOrderLog(s.logRepo, order.ID, actor.UserID, models.ActionPaymentConfirmed, map[string]interface{}{
		"payment_id": payment.ID,
	}, meta)

	publishEvent(s.publisher, "order.created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount,
	})
	publishEvent(s.publisher, "payment.confirmed", map[string]interface{}{
		"order_id":   order.ID,
		"payment_id": payment.ID,
		"amount":     payment.Amount,
	})

	outcome := s.workflow.FinalizeCheckout(order.ID, actor, meta)

	// Reload so the response reflects the confirmed status.
	if refreshed, err := s.orderRepo.GetByID(order.ID); err == nil {
		order = refreshed
	}

	return &CheckoutResult{
		Order:    order,
		Payment:  payment,
		Workflow: outcome,
	}, nil
}

// GetPaymentsForUser retrieves a user's payment history.
func (s *CheckoutService) GetPaymentsForUser(userID string) ([]models.Payment, error) {
	return s.paymentRepo.GetByUser(userID)
}

// GetPaymentForOrder retrieves the payment recorded against an order.
func (s *CheckoutService) GetPaymentForOrder(orderID string) (*models.Payment, error) {
	return s.paymentRepo.GetByOrderID(orderID)
}
