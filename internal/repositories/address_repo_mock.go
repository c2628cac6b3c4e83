package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"devicestore/internal/models"

	"github.com/google/uuid"
)

// MockAddressRepository is an in-memory implementation of AddressRepository.
type MockAddressRepository struct {
	addresses map[string]models.Address
	mu        sync.RWMutex
}

// NewMockAddressRepository creates a new instance of MockAddressRepository.
func NewMockAddressRepository() *MockAddressRepository {
	return &MockAddressRepository{
		addresses: make(map[string]models.Address),
	}
}

// GetByID returns an address by its ID.
func (r *MockAddressRepository) GetByID(id string) (*models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	address, ok := r.addresses[id]
	if !ok {
		return nil, fmt.Errorf("address %s: %w", id, models.ErrNotFound)
	}
	return &address, nil
}

// GetByUser returns a user's addresses, oldest first.
func (r *MockAddressRepository) GetByUser(userID string) ([]models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var addresses []models.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			addresses = append(addresses, a)
		}
	}
	sort.Slice(addresses, func(i, j int) bool { return addresses[i].CreatedAt.Before(addresses[j].CreatedAt) })
	return addresses, nil
}

// Create adds a new address.
func (r *MockAddressRepository) Create(address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	if address.CreatedAt.IsZero() {
		address.CreatedAt = time.Now()
	}
	r.addresses[address.ID] = *address
	return nil
}

// Update modifies an existing address.
func (r *MockAddressRepository) Update(address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[address.ID]; !ok {
		return fmt.Errorf("address %s for update: %w", address.ID, models.ErrNotFound)
	}
	r.addresses[address.ID] = *address
	return nil
}

// Delete removes an address by its ID.
func (r *MockAddressRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[id]; !ok {
		return fmt.Errorf("address %s for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.addresses, id)
	return nil
}
