package repositories

import (
	"errors"
	"fmt"

	"devicestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDeviceRepository is a GORM implementation of DeviceRepository.
type GORMDeviceRepository struct {
	db *gorm.DB
}

// NewGORMDeviceRepository creates a new instance of GORMDeviceRepository.
func NewGORMDeviceRepository(db *gorm.DB) *GORMDeviceRepository {
	return &GORMDeviceRepository{
		db: db,
	}
}

// GetAll retrieves all devices from the database.
func (r *GORMDeviceRepository) GetAll() ([]models.Device, error) {
	var devices []models.Device
	if err := r.db.Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to get all devices: %w", err)
	}
	return devices, nil
}

// GetByID retrieves a single device by its ID from the database.
func (r *GORMDeviceRepository) GetByID(id string) (*models.Device, error) {
	var device models.Device
	if err := r.db.First(&device, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("device %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get device by ID %s: %w", id, err)
	}
	return &device, nil
}

// Create creates a new device in the database.
func (r *GORMDeviceRepository) Create(device *models.Device) error {
	if device.ID == "" {
		device.ID = uuid.New().String()
	}
	if err := r.db.Create(device).Error; err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	return nil
}

// Update updates an existing device in the database.
func (r *GORMDeviceRepository) Update(device *models.Device) error {
	res := r.db.Save(device) // Save updates all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update device: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("device %s for update: %w", device.ID, models.ErrNotFound)
	}
	return nil
}

// Delete deletes a device by its ID from the database.
func (r *GORMDeviceRepository) Delete(id string) error {
	res := r.db.Delete(&models.Device{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete device: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("device %s for deletion: %w", id, models.ErrNotFound)
	}
	return nil
}
