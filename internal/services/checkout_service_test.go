package services_test

import (
	"testing"
	"time"

	"devicestore/internal/models"
	"devicestore/internal/repositories"
	"devicestore/internal/services"

	"github.com/stretchr/testify/assert"
)

// checkoutEnv wires the full checkout stack on in-memory repositories.
type checkoutEnv struct {
	cartRepo     *repositories.MockCartRepository
	deviceRepo   *repositories.MockDeviceRepository
	orderRepo    *repositories.MockOrderRepository
	shipmentRepo *repositories.MockShipmentRepository
	addressRepo  *repositories.MockAddressRepository
	logRepo      *repositories.MockOrderLogRepository
	cart         *services.CartService
	checkout     *services.CheckoutService
}

func newCheckoutEnv() *checkoutEnv {
	env := &checkoutEnv{
		cartRepo:     repositories.NewMockCartRepository(),
		deviceRepo:   repositories.NewMockDeviceRepository(),
		orderRepo:    repositories.NewMockOrderRepository(),
		shipmentRepo: repositories.NewMockShipmentRepository(),
		addressRepo:  repositories.NewMockAddressRepository(),
		logRepo:      repositories.NewMockOrderLogRepository(),
	}
	env.cart = services.NewCartService(env.cartRepo, env.deviceRepo)
	workflow := services.NewWorkflowService(env.orderRepo, env.shipmentRepo, env.addressRepo, env.cartRepo, env.logRepo, nil)
	env.checkout = services.NewCheckoutService(env.cartRepo, env.deviceRepo, env.orderRepo, env.orderRepo.Payments, env.logRepo, workflow, nil)
	return env
}

// validCardForm returns a credit card form that passes every check when
// the amount matches the cart subtotal.
func validCardForm(amount float64) services.PaymentForm {
	return services.PaymentForm{
		Method:      models.PaymentCreditCard,
		CardNumber:  "4242424242424242",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 2,
		CVV:         "123",
		Amount:      amount,
	}
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	env := newCheckoutEnv()
	actor := services.Actor{UserID: "user-1"}

	_, err := env.checkout.Checkout(actor, validCardForm(10.0), models.RequestMeta{})
	assert.ErrorIs(t, err, models.ErrEmptyCart)
}

func TestCheckoutService_ValidationCollectsAllReasons(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 10)
	actor := services.Actor{UserID: "user-1"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 2)
	assert.NoError(t, err)

	form := services.PaymentForm{
		Method:      models.PaymentCreditCard,
		CardNumber:  "4242424242424243", // fails checksum
		ExpiryMonth: 13,
		ExpiryYear:  2030,
		CVV:         "12",
		Amount:      150.00, // subtotal is 200.00
	}
	_, err = env.checkout.Checkout(actor, form, models.RequestMeta{})

	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Reasons, 4)

	// Cart untouched on validation failure.
	items, _ := env.cart.GetCart(actor.OwnerID())
	assert.Len(t, items, 1)
}

func TestCheckoutService_AmountTolerance(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 10)
	actor := services.Actor{UserID: "user-1"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 2)
	assert.NoError(t, err)

	// Within the 0.01 tolerance.
	result, err := env.checkout.Checkout(actor, validCardForm(200.009), models.RequestMeta{})
	assert.NoError(t, err)
	assert.NotNil(t, result.Order)
}

func TestCheckoutService_ExpiredCardRejected(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 10)
	actor := services.Actor{UserID: "user-1"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 1)
	assert.NoError(t, err)

	form := validCardForm(100.00)
	form.ExpiryMonth = 1
	form.ExpiryYear = time.Now().Year() - 1
	_, err = env.checkout.Checkout(actor, form, models.RequestMeta{})

	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reasons, "card is expired")
}

func TestCheckoutService_CashOnDeliverySkipsCardChecks(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 10)
	actor := services.Actor{UserID: "user-1"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 1)
	assert.NoError(t, err)

	form := services.PaymentForm{
		Method: models.PaymentCashOnDelivery,
		Amount: 100.00,
	}
	result, err := env.checkout.Checkout(actor, form, models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentCashOnDelivery, result.Payment.Method)
	assert.Empty(t, result.Payment.CardLast4)
}

func TestCheckoutService_SuccessfulCheckout(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 149.99, 10)
	actor := services.Actor{UserID: "user-1"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 3)
	assert.NoError(t, err)

	result, err := env.checkout.Checkout(actor, validCardForm(449.97), models.RequestMeta{IP: "10.0.0.1"})
	assert.NoError(t, err)

	// Order confirmed by the workflow, one frozen line item.
	assert.Equal(t, models.OrderConfirmed, result.Order.Status)
	assert.Len(t, result.Order.Items, 1)
	assert.Equal(t, 3, result.Order.Items[0].Quantity)
	assert.Equal(t, 149.99, result.Order.Items[0].UnitPrice)
	assert.InDelta(t, 449.97, result.Order.TotalAmount, 0.001)

	// Payment recorded with the card's last four digits.
	assert.Equal(t, "4242", result.Payment.CardLast4)
	payment, err := env.checkout.GetPaymentForOrder(result.Order.ID)
	assert.NoError(t, err)
	assert.Equal(t, result.Payment.ID, payment.ID)

	// Shipment created, scheduled on a business day.
	assert.NotNil(t, result.Workflow.Shipment)
	weekday := result.Workflow.Shipment.ScheduledDate.Weekday()
	assert.NotEqual(t, time.Saturday, weekday)
	assert.NotEqual(t, time.Sunday, weekday)
	assert.True(t, result.Workflow.Shipment.ScheduledDate.After(time.Now()))

	// Cart emptied, stock not decremented a second time.
	assert.True(t, result.Workflow.CartCleared)
	items, _ := env.cart.GetCart(actor.OwnerID())
	assert.Empty(t, items)
	stored, _ := env.deviceRepo.GetByID(device.ID)
	assert.Equal(t, 7, stored.Stock)

	// Audit trail covers creation, payment and shipment.
	logs, err := env.logRepo.GetByOrderID(result.Order.ID)
	assert.NoError(t, err)
	actions := make([]string, 0, len(logs))
	for _, entry := range logs {
		actions = append(actions, entry.Action)
	}
	assert.Contains(t, actions, models.ActionOrderCreated)
	assert.Contains(t, actions, models.ActionPaymentAdded)
	assert.Contains(t, actions, models.ActionPaymentConfirmed)
	assert.Contains(t, actions, models.ActionShipmentCreated)
}

func TestCheckoutService_FrozenPriceSurvivesCatalogChange(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 10)
	actor := services.Actor{UserID: "user-1"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 2)
	assert.NoError(t, err)

	result, err := env.checkout.Checkout(actor, validCardForm(200.00), models.RequestMeta{})
	assert.NoError(t, err)

	// A later price change does not touch the frozen unit price.
	device.Price = 500.00
	assert.NoError(t, env.deviceRepo.Update(device))

	order, err := env.orderRepo.GetByID(result.Order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 100.00, order.Items[0].UnitPrice)
}

func TestCheckoutService_GuestCheckout(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 50.00, 10)
	actor := services.Actor{GuestToken: "guest-abc"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 1)
	assert.NoError(t, err)

	result, err := env.checkout.Checkout(actor, validCardForm(50.00), models.RequestMeta{})
	assert.NoError(t, err)
	assert.Empty(t, result.Order.UserID)
	assert.Equal(t, models.OrderConfirmed, result.Order.Status)

	orders, err := env.orderRepo.GetByOwner("guest-abc")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCheckoutService_ShipmentFailureDoesNotAbortCheckout(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 10)
	actor := services.Actor{UserID: "user-1"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 1)
	assert.NoError(t, err)

	env.shipmentRepo.FailCreate = true
	result, err := env.checkout.Checkout(actor, validCardForm(100.00), models.RequestMeta{})
	assert.NoError(t, err)

	// The failed step is reported; the rest of the workflow still ran.
	assert.Nil(t, result.Workflow.Shipment)
	assert.NotEmpty(t, result.Workflow.StepErrors)
	assert.True(t, result.Workflow.OrderConfirmed)
	assert.True(t, result.Workflow.CartCleared)
	assert.Equal(t, models.OrderConfirmed, result.Order.Status)
	items, _ := env.cart.GetCart(actor.OwnerID())
	assert.Empty(t, items)
}

func TestCheckoutService_GetPaymentsForUser(t *testing.T) {
	env := newCheckoutEnv()
	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 10)
	actor := services.Actor{UserID: "user-1"}

	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 1)
	assert.NoError(t, err)
	_, err = env.checkout.Checkout(actor, validCardForm(100.00), models.RequestMeta{})
	assert.NoError(t, err)

	payments, err := env.checkout.GetPaymentsForUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, 100.00, payments[0].Amount)

	other, err := env.checkout.GetPaymentsForUser("user-2")
	assert.NoError(t, err)
	assert.Empty(t, other)
}
