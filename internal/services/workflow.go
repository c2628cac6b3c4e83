package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"devicestore/internal/models"
	"devicestore/internal/repositories"
)

// CheckoutOutcome is the composite result of the post-payment workflow.
// The workflow is best-effort: every step runs, failures are collected
// in StepErrors, and a later step is never skipped because an earlier
// one failed. A confirmed order with no shipment is therefore possible.
type CheckoutOutcome struct {
	Shipment       *models.Shipment `json:"shipment,omitempty"`
	OrderConfirmed bool             `json:"order_confirmed"`
	CartCleared    bool             `json:"cart_cleared"`
	StepErrors     []string         `json:"step_errors,omitempty"`
}

// WorkflowService runs the post-payment finalization sequence: create a
// shipment if none exists, confirm the order, clear the cart.
type WorkflowService struct {
	orderRepo    repositories.OrderRepository
	shipmentRepo repositories.ShipmentRepository
	addressRepo  repositories.AddressRepository
	cartRepo     repositories.CartRepository
	logRepo      repositories.OrderLogRepository
	publisher    EventPublisher
}

// NewWorkflowService creates a new WorkflowService. publisher may be nil.
func NewWorkflowService(
	orderRepo repositories.OrderRepository,
	shipmentRepo repositories.ShipmentRepository,
	addressRepo repositories.AddressRepository,
	cartRepo repositories.CartRepository,
	logRepo repositories.OrderLogRepository,
	publisher EventPublisher,
) *WorkflowService {
	return &WorkflowService{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		addressRepo:  addressRepo,
		cartRepo:     cartRepo,
		logRepo:      logRepo,
		publisher:    publisher,
	}
}

// FinalizeCheckout runs the workflow once per successful payment. The
// cart is cleared regardless of how the earlier steps fared.
func (s *WorkflowService) FinalizeCheckout(orderID string, actor Actor, meta models.RequestMeta) *CheckoutOutcome {
	out := &CheckoutOutcome{}

	runStep(out, "auto-create shipment", func() error {
		shipment, err := s.AutoCreateShipment(orderID, actor, meta)
		if err != nil {
			return err
		}
		out.Shipment = shipment // nil when the order was not eligible
		return nil
	})

	runStep(out, "confirm order", func() error {
		confirmed, err := s.ConfirmOrder(orderID)
		if err != nil {
			return err
		}
		out.OrderConfirmed = confirmed
		return nil
	})

	runStep(out, "clear cart", func() error {
		if err := s.cartRepo.DeleteByOwner(actor.OwnerID()); err != nil {
			return err
		}
		out.CartCleared = true
		return nil
	})

	return out
}

// runStep executes one workflow step, logging and recording its failure
// instead of propagating it.
func runStep(out *CheckoutOutcome, name string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("Workflow step %q failed: %v", name, err)
		out.StepErrors = append(out.StepErrors, fmt.Sprintf("%s: %v", name, err))
	}
}

// AutoCreateShipment creates the shipment for an order if one does not
// already exist. Calling it again returns the existing shipment
// unchanged. An order that is missing, owned by someone else, or no
// longer placed is not eligible; that is a soft outcome (nil, nil), not
// an error.
func (s *WorkflowService) AutoCreateShipment(orderID string, actor Actor, meta models.RequestMeta) (*models.Shipment, error) {
	existing, err := s.shipmentRepo.GetByOrderID(orderID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		log.Printf("Shipment not created: order %s could not be loaded: %v", orderID, err)
		return nil, nil
	}
	if !orderOwnedBy(order, actor) {
		log.Printf("Shipment not created: order %s does not belong to caller", orderID)
		return nil, nil
	}
	if order.Status != models.OrderPlaced {
		log.Printf("Shipment not created: order %s has status %s", orderID, order.Status)
		return nil, nil
	}

	address, err := s.pickShipmentAddress(actor)
	if err != nil {
		return nil, err
	}

	shipment := &models.Shipment{
		OrderID:       orderID,
		AddressID:     address.ID,
		Method:        models.ShipmentStandard,
		ScheduledDate: nextBusinessDay(time.Now()),
		Finalised:     false,
	}
	if err := s.shipmentRepo.Create(shipment); err != nil {
		return nil, err
	}

	appendOrderLog(s.logRepo, orderID, actor.UserID, models.ActionShipmentCreated, map[string]interface{}{
		"shipment_id":    shipment.ID,
		"address_id":     shipment.AddressID,
		"method":         shipment.Method,
		"scheduled_date": shipment.ScheduledDate.Format("2006-01-02"),
	}, meta)
	publishEvent(s.publisher, "shipment.created", map[string]interface{}{
		"order_id":    orderID,
		"shipment_id": shipment.ID,
	})

	return shipment, nil
}

// pickShipmentAddress returns the caller's earliest-created address, or
// synthesizes a placeholder record when they have none so the shipment
// can still be created and edited later.
func (s *WorkflowService) pickShipmentAddress(actor Actor) (*models.Address, error) {
	addresses, err := s.addressRepo.GetByUser(actor.OwnerID())
	if err != nil {
		return nil, err
	}
	if len(addresses) > 0 {
		return &addresses[0], nil
	}

	placeholder := &models.Address{
		UserID:   actor.OwnerID(),
		Label:    "placeholder",
		Street:   "to be provided",
		City:     "to be provided",
		Postcode: "00000",
		Country:  "to be provided",
	}
	if err := s.addressRepo.Create(placeholder); err != nil {
		return nil, fmt.Errorf("failed to synthesize placeholder address: %w", err)
	}
	return placeholder, nil
}

// ConfirmOrder moves a placed order to confirmed. Any other current
// status is a no-op, not an error.
func (s *WorkflowService) ConfirmOrder(orderID string) (bool, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return false, err
	}
	if order.Status != models.OrderPlaced {
		return false, nil
	}
	if err := s.orderRepo.UpdateStatus(orderID, models.OrderConfirmed); err != nil {
		return false, err
	}
	return true, nil
}

// orderOwnedBy reports whether the actor placed the order: matching user
// ID, or matching guest token for anonymous orders.
func orderOwnedBy(order *models.Order, actor Actor) bool {
	if order.UserID != "" {
		return order.UserID == actor.UserID
	}
	return order.GuestToken != "" && order.GuestToken == actor.GuestToken
}

// nextBusinessDay returns the next calendar day, skipped forward past
// weekends to the following Monday.
func nextBusinessDay(t time.Time) time.Time {
	d := t.AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}
