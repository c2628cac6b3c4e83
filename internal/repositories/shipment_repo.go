package repositories

import (
	"devicestore/internal/models"
)

// ShipmentRepository defines the interface for shipment data access.
type ShipmentRepository interface {
	GetByID(id string) (*models.Shipment, error)
	GetByOrderID(orderID string) (*models.Shipment, error)
	Create(shipment *models.Shipment) error
	Update(shipment *models.Shipment) error
	Delete(id string) error
}
