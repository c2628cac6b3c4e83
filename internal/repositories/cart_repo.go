package repositories

import (
	"devicestore/internal/models"
)

// CartRepository defines the interface for cart-line data access.
// OwnerID is a user ID or, for anonymous sessions, a guest token.
type CartRepository interface {
	GetByOwner(ownerID string) ([]models.CartItem, error)
	GetByID(id string) (*models.CartItem, error)
	GetByOwnerAndDevice(ownerID, deviceID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(id string) error
	DeleteByOwner(ownerID string) error
}
