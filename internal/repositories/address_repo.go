package repositories

import (
	"devicestore/internal/models"
)

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	GetByID(id string) (*models.Address, error)
	// GetByUser returns a user's addresses oldest first, so index 0 is
	// the one the shipment workflow picks.
	GetByUser(userID string) ([]models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id string) error
}
