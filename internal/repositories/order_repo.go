package repositories

import (
	"devicestore/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never physically deleted; cancellation is a status transition.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByOwner(ownerID string) ([]models.Order, error)
	// CreateWithPayment persists the order, its items and the payment
	// record atomically. The checkout path is the only writer that
	// creates orders.
	CreateWithPayment(order *models.Order, payment *models.Payment) error
	UpdateStatus(id string, status string) error
	UpdateItem(item *models.OrderItem) error
}
