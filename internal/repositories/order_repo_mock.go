package repositories

import (
	"fmt"
	"sync"
	"time"

	"devicestore/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Payments holds the payment half of CreateWithPayment and doubles as the
// PaymentRepository for tests.
type MockOrderRepository struct {
	orders   map[string]models.Order
	Payments *MockPaymentRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		Payments: NewMockPaymentRepository(),
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	return &order, nil
}

// GetByOwner returns the orders a user or guest session placed.
func (r *MockOrderRepository) GetByOwner(ownerID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID == ownerID || (order.GuestToken != "" && order.GuestToken == ownerID) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// CreateWithPayment stores the order, its items and the payment record.
func (r *MockOrderRepository) CreateWithPayment(order *models.Order, payment *models.Payment) error {
	r.mu.Lock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	r.mu.Unlock()

	payment.OrderID = order.ID
	return r.Payments.Create(payment)
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s for status update: %w", id, models.ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// UpdateItem modifies one line item of a stored order.
func (r *MockOrderRepository) UpdateItem(item *models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[item.OrderID]
	if !ok {
		return fmt.Errorf("order %s for item update: %w", item.OrderID, models.ErrNotFound)
	}
	for i := range order.Items {
		if order.Items[i].ID == item.ID {
			order.Items[i] = *item
			r.orders[order.ID] = order
			return nil
		}
	}
	return fmt.Errorf("order item %s for update: %w", item.ID, models.ErrNotFound)
}
