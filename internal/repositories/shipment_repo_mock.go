package repositories

import (
	"fmt"
	"sync"

	"devicestore/internal/models"

	"github.com/google/uuid"
)

// MockShipmentRepository is an in-memory implementation of ShipmentRepository.
// FailCreate forces Create to error, for exercising the workflow's
// partial-failure behavior.
type MockShipmentRepository struct {
	shipments  map[string]models.Shipment
	FailCreate bool
	mu         sync.RWMutex
}

// NewMockShipmentRepository creates a new instance of MockShipmentRepository.
func NewMockShipmentRepository() *MockShipmentRepository {
	return &MockShipmentRepository{
		shipments: make(map[string]models.Shipment),
	}
}

// GetByID returns a shipment by its ID.
func (r *MockShipmentRepository) GetByID(id string) (*models.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shipment, ok := r.shipments[id]
	if !ok {
		return nil, fmt.Errorf("shipment %s: %w", id, models.ErrNotFound)
	}
	return &shipment, nil
}

// GetByOrderID returns the shipment for an order, if one exists.
func (r *MockShipmentRepository) GetByOrderID(orderID string) (*models.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.shipments {
		if s.OrderID == orderID {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("shipment for order %s: %w", orderID, models.ErrNotFound)
}

// Create adds a new shipment.
func (r *MockShipmentRepository) Create(shipment *models.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate {
		return fmt.Errorf("simulated shipment store failure")
	}
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	r.shipments[shipment.ID] = *shipment
	return nil
}

// Update modifies an existing shipment.
func (r *MockShipmentRepository) Update(shipment *models.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shipments[shipment.ID]; !ok {
		return fmt.Errorf("shipment %s for update: %w", shipment.ID, models.ErrNotFound)
	}
	r.shipments[shipment.ID] = *shipment
	return nil
}

// Delete removes a shipment by its ID.
func (r *MockShipmentRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shipments[id]; !ok {
		return fmt.Errorf("shipment %s for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.shipments, id)
	return nil
}

// Count reports how many shipments are stored.
func (r *MockShipmentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shipments)
}
