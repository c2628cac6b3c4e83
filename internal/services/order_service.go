package services

import (
	"fmt"
	"log"

	"devicestore/internal/models"
	"devicestore/internal/repositories"
)

// OrderService handles business logic for viewing and mutating orders
// after checkout: cancellation, pre-finalization item edits, and the
// staff fulfillment transition.
type OrderService struct {
	orderRepo  repositories.OrderRepository
	deviceRepo repositories.DeviceRepository
	logRepo    repositories.OrderLogRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, deviceRepo repositories.DeviceRepository, logRepo repositories.OrderLogRepository) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		deviceRepo: deviceRepo,
		logRepo:    logRepo,
	}
}

// GetAllOrders retrieves all orders. Staff only; enforced by the handler.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersForOwner retrieves the orders placed by a user or guest session.
func (s *OrderService) GetOrdersForOwner(ownerID string) ([]models.Order, error) {
	return s.orderRepo.GetByOwner(ownerID)
}

// GetOrder retrieves one order. privileged callers (staff/admin) bypass
// the ownership check.
func (s *OrderService) GetOrder(orderID string, actor Actor, privileged bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !privileged && !orderOwnedBy(order, actor) {
		return nil, fmt.Errorf("order %s: %w", orderID, models.ErrForbidden)
	}
	return order, nil
}

// CancelOrder cancels a placed order and restores device stock for every
// line item. Only the owner (user or matching guest token) may cancel;
// any status other than placed is rejected.
func (s *OrderService) CancelOrder(orderID string, actor Actor, meta models.RequestMeta) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if !orderOwnedBy(order, actor) {
		return fmt.Errorf("order %s: %w", orderID, models.ErrForbidden)
	}
	if order.Status != models.OrderPlaced {
		return fmt.Errorf("cannot cancel order in status %s: %w", order.Status, models.ErrInvalidState)
	}

	if err := s.orderRepo.UpdateStatus(orderID, models.OrderCancelled); err != nil {
		return err
	}

	// Restock every line. Failures are logged and the remaining items
	// still processed; the cancellation itself is already committed.
	for _, item := range order.Items {
		device, err := s.deviceRepo.GetByID(item.DeviceID)
		if err != nil {
			log.Printf("Warning: cannot restock device %s for cancelled order %s: %v", item.DeviceID, orderID, err)
			continue
		}
		device.Stock += item.Quantity
		if err := s.deviceRepo.Update(device); err != nil {
			log.Printf("Warning: failed to restock device %s for cancelled order %s: %v", item.DeviceID, orderID, err)
		}
	}

	appendOrderLog(s.logRepo, orderID, actor.UserID, models.ActionOrderCancelled, map[string]interface{}{
		"previous_status": models.OrderPlaced,
	}, meta)
	return nil
}

// ItemChange is one requested line-item quantity edit.
type ItemChange struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ItemChangeResult reports how one requested edit fared.
type ItemChangeResult struct {
	ItemID  string `json:"item_id"`
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// UpdateOrderItems adjusts line-item quantities on a placed order,
// applying the quantity delta to device stock per item. An item whose new
// quantity would drive stock negative is rejected individually; edits
// already applied in the same batch stay applied. The edit is audited
// only when at least one change went through.
func (s *OrderService) UpdateOrderItems(orderID string, actor Actor, changes []ItemChange, meta models.RequestMeta) ([]ItemChangeResult, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !orderOwnedBy(order, actor) {
		return nil, fmt.Errorf("order %s: %w", orderID, models.ErrForbidden)
	}
	if order.Status != models.OrderPlaced {
		return nil, fmt.Errorf("cannot edit order in status %s: %w", order.Status, models.ErrInvalidState)
	}

	itemsByID := make(map[string]*models.OrderItem, len(order.Items))
	for i := range order.Items {
		itemsByID[order.Items[i].ID] = &order.Items[i]
	}

	results := make([]ItemChangeResult, 0, len(changes))
	applied := 0
	for _, change := range changes {
		item, ok := itemsByID[change.ItemID]
		if !ok {
			results = append(results, ItemChangeResult{ItemID: change.ItemID, Reason: "item not found on order"})
			continue
		}
		if change.Quantity <= 0 {
			results = append(results, ItemChangeResult{ItemID: change.ItemID, Reason: "quantity must be greater than zero"})
			continue
		}

		device, err := s.deviceRepo.GetByID(item.DeviceID)
		if err != nil {
			results = append(results, ItemChangeResult{ItemID: change.ItemID, Reason: fmt.Sprintf("device unavailable: %v", err)})
			continue
		}

		stockChange := item.Quantity - change.Quantity
		if device.Stock+stockChange < 0 {
			results = append(results, ItemChangeResult{ItemID: change.ItemID, Reason: models.ErrInsufficientStock.Error()})
			continue
		}

		device.Stock += stockChange
		if err := s.deviceRepo.Update(device); err != nil {
			results = append(results, ItemChangeResult{ItemID: change.ItemID, Reason: fmt.Sprintf("stock update failed: %v", err)})
			continue
		}

		item.Quantity = change.Quantity
		if err := s.orderRepo.UpdateItem(item); err != nil {
			// Stock already moved; the item write failing leaves the two
			// out of step, matching the store's lenient consistency model.
			results = append(results, ItemChangeResult{ItemID: change.ItemID, Reason: fmt.Sprintf("item update failed: %v", err)})
			continue
		}
		results = append(results, ItemChangeResult{ItemID: change.ItemID, Applied: true})
		applied++
	}

	if applied > 0 {
		appendOrderLog(s.logRepo, orderID, actor.UserID, models.ActionOrderUpdated, map[string]interface{}{
			"changes": results,
		}, meta)
	}
	return results, nil
}

// SetOrderStatus is the staff fulfillment transition. The only manual
// move allowed is confirmed to completed; everything else goes through
// cancellation or the payment workflow.
func (s *OrderService) SetOrderStatus(orderID, status, staffUserID string, meta models.RequestMeta) error {
	if !models.ValidOrderStatus(status) {
		return models.Invalid(fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if !(order.Status == models.OrderConfirmed && status == models.OrderCompleted) {
		return fmt.Errorf("transition %s to %s not permitted: %w", order.Status, status, models.ErrInvalidState)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return err
	}
	appendOrderLog(s.logRepo, orderID, staffUserID, models.ActionStatusChanged, map[string]interface{}{
		"from": order.Status,
		"to":   status,
	}, meta)
	return nil
}

// GetOrderLogs retrieves the audit trail for one order the caller may see.
func (s *OrderService) GetOrderLogs(orderID string, actor Actor, privileged bool) ([]models.OrderLog, error) {
	if _, err := s.GetOrder(orderID, actor, privileged); err != nil {
		return nil, err
	}
	return s.logRepo.GetByOrderID(orderID)
}

// GetAllOrderLogs retrieves every audit entry. Admin only; enforced by
// the handler.
func (s *OrderService) GetAllOrderLogs() ([]models.OrderLog, error) {
	return s.logRepo.GetAll()
}
