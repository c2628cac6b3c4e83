package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"devicestore/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items map[string]models.CartItem
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]models.CartItem),
	}
}

// GetByOwner returns all cart lines for an owner in insertion order.
func (r *MockCartRepository) GetByOwner(ownerID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.CartItem
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

// GetByID returns a cart line by its ID.
func (r *MockCartRepository) GetByID(id string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("cart item %s: %w", id, models.ErrNotFound)
	}
	return &item, nil
}

// GetByOwnerAndDevice returns the cart line for an (owner, device) pair.
func (r *MockCartRepository) GetByOwnerAndDevice(ownerID, deviceID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.OwnerID == ownerID && item.DeviceID == deviceID {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("cart item for device %s: %w", deviceID, models.ErrNotFound)
}

// Create adds a new cart line.
func (r *MockCartRepository) Create(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing cart line.
func (r *MockCartRepository) Update(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("cart item %s for update: %w", item.ID, models.ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes a cart line by its ID.
func (r *MockCartRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("cart item %s for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// DeleteByOwner removes every cart line belonging to an owner.
func (r *MockCartRepository) DeleteByOwner(ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.OwnerID == ownerID {
			delete(r.items, id)
		}
	}
	return nil
}
