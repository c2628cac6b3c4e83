package services

import (
	"errors"
	"fmt"
	"time"

	"devicestore/internal/models"
	"devicestore/internal/repositories"
)

// ShipmentService handles post-creation shipment management. A shipment
// stays editable until it is finalised; after that, update, delete and
// finalise are all rejected.
type ShipmentService struct {
	shipmentRepo repositories.ShipmentRepository
	orderRepo    repositories.OrderRepository
	addressRepo  repositories.AddressRepository
}

// NewShipmentService creates a new ShipmentService.
func NewShipmentService(shipmentRepo repositories.ShipmentRepository, orderRepo repositories.OrderRepository, addressRepo repositories.AddressRepository) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		addressRepo:  addressRepo,
	}
}

// GetShipmentsForOwner retrieves the shipments of the caller's orders.
func (s *ShipmentService) GetShipmentsForOwner(ownerID string) ([]models.Shipment, error) {
	orders, err := s.orderRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	var shipments []models.Shipment
	for _, order := range orders {
		shipment, err := s.shipmentRepo.GetByOrderID(order.ID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		shipments = append(shipments, *shipment)
	}
	return shipments, nil
}

// GetShipment retrieves one shipment the caller may see.
func (s *ShipmentService) GetShipment(id string, actor Actor, privileged bool) (*models.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !privileged {
		order, err := s.orderRepo.GetByID(shipment.OrderID)
		if err != nil {
			return nil, err
		}
		if !orderOwnedBy(order, actor) {
			return nil, fmt.Errorf("shipment %s: %w", id, models.ErrForbidden)
		}
	}
	return shipment, nil
}

// ShipmentUpdate carries the editable shipment fields. Zero values leave
// the current value unchanged.
type ShipmentUpdate struct {
	Method        string    `json:"method" validate:"omitempty,max=30"`
	ScheduledDate time.Time `json:"scheduled_date"`
	AddressID     string    `json:"address_id"`
}

// UpdateShipment edits a shipment that is not yet finalised. A changed
// address must belong to the caller; ownership is re-verified on every
// edit.
func (s *ShipmentService) UpdateShipment(id string, actor Actor, privileged bool, update ShipmentUpdate) (*models.Shipment, error) {
	shipment, err := s.GetShipment(id, actor, privileged)
	if err != nil {
		return nil, err
	}
	if shipment.Finalised {
		return nil, fmt.Errorf("shipment %s is finalised: %w", id, models.ErrInvalidState)
	}

	if update.AddressID != "" && update.AddressID != shipment.AddressID {
		address, err := s.addressRepo.GetByID(update.AddressID)
		if err != nil {
			return nil, err
		}
		if !privileged && address.UserID != actor.OwnerID() {
			return nil, fmt.Errorf("address %s: %w", update.AddressID, models.ErrForbidden)
		}
		shipment.AddressID = update.AddressID
	}
	if update.Method != "" {
		shipment.Method = update.Method
	}
	if !update.ScheduledDate.IsZero() {
		shipment.ScheduledDate = update.ScheduledDate
	}

	if err := s.shipmentRepo.Update(shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// FinaliseShipment freezes a shipment. Finalising twice is rejected.
func (s *ShipmentService) FinaliseShipment(id string, actor Actor, privileged bool) (*models.Shipment, error) {
	shipment, err := s.GetShipment(id, actor, privileged)
	if err != nil {
		return nil, err
	}
	if shipment.Finalised {
		return nil, fmt.Errorf("shipment %s is already finalised: %w", id, models.ErrInvalidState)
	}

	shipment.Finalised = true
	if err := s.shipmentRepo.Update(shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// DeleteShipment removes a shipment that is not yet finalised.
func (s *ShipmentService) DeleteShipment(id string, actor Actor, privileged bool) error {
	shipment, err := s.GetShipment(id, actor, privileged)
	if err != nil {
		return err
	}
	if shipment.Finalised {
		return fmt.Errorf("shipment %s is finalised: %w", id, models.ErrInvalidState)
	}
	return s.shipmentRepo.Delete(shipment.ID)
}
