package repositories

import (
	"errors"
	"fmt"

	"devicestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByOwner retrieves all cart lines for an owner.
func (r *GORMCartRepository) GetByOwner(ownerID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for owner %s: %w", ownerID, err)
	}
	return items, nil
}

// GetByID retrieves a single cart line by its ID.
func (r *GORMCartRepository) GetByID(id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", id, err)
	}
	return &item, nil
}

// GetByOwnerAndDevice retrieves the cart line for an (owner, device) pair.
func (r *GORMCartRepository) GetByOwnerAndDevice(ownerID, deviceID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "owner_id = ? AND device_id = ?", ownerID, deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item for device %s: %w", deviceID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item for device %s: %w", deviceID, err)
	}
	return &item, nil
}

// Create adds a new cart line.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Update modifies an existing cart line.
func (r *GORMCartRepository) Update(item *models.CartItem) error {
	res := r.db.Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s for update: %w", item.ID, models.ErrNotFound)
	}
	return nil
}

// Delete removes a cart line by its ID. The delete is unscoped: a
// soft-deleted row would keep occupying the (owner, device) unique index
// and block the next add of the same device.
func (r *GORMCartRepository) Delete(id string) error {
	res := r.db.Unscoped().Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s for deletion: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeleteByOwner removes every cart line belonging to an owner.
func (r *GORMCartRepository) DeleteByOwner(ownerID string) error {
	if err := r.db.Unscoped().Where("owner_id = ?", ownerID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for owner %s: %w", ownerID, err)
	}
	return nil
}
