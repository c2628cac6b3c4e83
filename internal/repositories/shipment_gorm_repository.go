package repositories

import (
	"errors"
	"fmt"

	"devicestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMShipmentRepository is a GORM implementation of ShipmentRepository.
type GORMShipmentRepository struct {
	db *gorm.DB
}

// NewGORMShipmentRepository creates a new instance of GORMShipmentRepository.
func NewGORMShipmentRepository(db *gorm.DB) *GORMShipmentRepository {
	return &GORMShipmentRepository{
		db: db,
	}
}

// GetByID retrieves a single shipment by its ID.
func (r *GORMShipmentRepository) GetByID(id string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shipment %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shipment %s: %w", id, err)
	}
	return &shipment, nil
}

// GetByOrderID retrieves the shipment for an order, if one exists.
func (r *GORMShipmentRepository) GetByOrderID(orderID string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.First(&shipment, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shipment for order %s: %w", orderID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shipment for order %s: %w", orderID, err)
	}
	return &shipment, nil
}

// Create creates a new shipment.
func (r *GORMShipmentRepository) Create(shipment *models.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	if err := r.db.Create(shipment).Error; err != nil {
		return fmt.Errorf("failed to create shipment: %w", err)
	}
	return nil
}

// Update modifies an existing shipment.
func (r *GORMShipmentRepository) Update(shipment *models.Shipment) error {
	res := r.db.Save(shipment)
	if res.Error != nil {
		return fmt.Errorf("failed to update shipment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shipment %s for update: %w", shipment.ID, models.ErrNotFound)
	}
	return nil
}

// Delete removes a shipment by its ID.
func (r *GORMShipmentRepository) Delete(id string) error {
	res := r.db.Delete(&models.Shipment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete shipment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shipment %s for deletion: %w", id, models.ErrNotFound)
	}
	return nil
}
