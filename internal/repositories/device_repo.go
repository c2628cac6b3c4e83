package repositories

import (
	"devicestore/internal/models"
)

// DeviceRepository defines the interface for catalog data access.
type DeviceRepository interface {
	GetAll() ([]models.Device, error)
	GetByID(id string) (*models.Device, error)
	Create(device *models.Device) error
	Update(device *models.Device) error
	Delete(id string) error
}
