package repositories

import (
	"devicestore/internal/models"
)

// PaymentRepository defines the interface for payment data access.
// Creation happens through OrderRepository.CreateWithPayment; this is the
// read side used by history views and the duplicate guard.
type PaymentRepository interface {
	GetByOrderID(orderID string) (*models.Payment, error)
	GetByUser(userID string) ([]models.Payment, error)
}
