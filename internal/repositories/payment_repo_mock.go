package repositories

import (
	"fmt"
	"sync"

	"devicestore/internal/models"

	"github.com/google/uuid"
)

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
// It additionally exposes Create so MockOrderRepository can record the
// payment half of a checkout.
type MockPaymentRepository struct {
	payments map[string]models.Payment
	mu       sync.RWMutex
}

// NewMockPaymentRepository creates a new instance of MockPaymentRepository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]models.Payment),
	}
}

// Create adds a payment record.
func (r *MockPaymentRepository) Create(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	r.payments[payment.ID] = *payment
	return nil
}

// GetByOrderID returns the payment recorded for an order.
func (r *MockPaymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.payments {
		if p.OrderID == orderID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("payment for order %s: %w", orderID, models.ErrNotFound)
}

// GetByUser returns all payments made by a user.
func (r *MockPaymentRepository) GetByUser(userID string) ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []models.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}
