package services

import (
	"errors"
	"fmt"

	"devicestore/internal/models"
	"devicestore/internal/repositories"
)

// CartService handles cart lines and stock reservation.
//
// Reservation protocol: stock is reserved at add-to-cart time by
// decrementing Device.Stock immediately. Checkout never decrements stock
// again; removing a line or cancelling the order are the only paths that
// restore it. The cart upsert and the stock write are two sequential
// writes with no shared transaction, matching the store's lenient
// consistency model.
type CartService struct {
	cartRepo   repositories.CartRepository
	deviceRepo repositories.DeviceRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, deviceRepo repositories.DeviceRepository) *CartService {
	return &CartService{
		cartRepo:   cartRepo,
		deviceRepo: deviceRepo,
	}
}

// GetCart retrieves all cart lines for an owner.
func (s *CartService) GetCart(ownerID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByOwner(ownerID)
}

// AddToCart reserves quantity units of a device for the owner: it upserts
// the (owner, device) cart line and decrements the device's stock.
func (s *CartService) AddToCart(ownerID, deviceID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, models.Invalid("quantity must be greater than zero")
	}

	device, err := s.deviceRepo.GetByID(deviceID)
	if err != nil {
		return nil, err
	}
	if device.Stock < quantity {
		return nil, fmt.Errorf("device %s (requested %d, available %d): %w",
			device.Name, quantity, device.Stock, models.ErrInsufficientStock)
	}

	line, err := s.cartRepo.GetByOwnerAndDevice(ownerID, deviceID)
	switch {
	case err == nil:
		line.Quantity += quantity
		if err := s.cartRepo.Update(line); err != nil {
			return nil, err
		}
	case errors.Is(err, models.ErrNotFound):
		line = &models.CartItem{
			OwnerID:  ownerID,
			DeviceID: deviceID,
			Quantity: quantity,
		}
		if err := s.cartRepo.Create(line); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	device.Stock -= quantity
	if err := s.deviceRepo.Update(device); err != nil {
		return nil, fmt.Errorf("cart line saved but stock reservation failed: %w", err)
	}

	return line, nil
}

// RemoveFromCart restores the line's reserved stock and deletes the line.
// Only the owner may remove it.
func (s *CartService) RemoveFromCart(ownerID, cartItemID string) error {
	line, err := s.cartRepo.GetByID(cartItemID)
	if err != nil {
		return err
	}
	if line.OwnerID != ownerID {
		return fmt.Errorf("cart item %s: %w", cartItemID, models.ErrForbidden)
	}

	device, err := s.deviceRepo.GetByID(line.DeviceID)
	if err == nil {
		device.Stock += line.Quantity
		if err := s.deviceRepo.Update(device); err != nil {
			return fmt.Errorf("failed to restore stock for device %s: %w", device.ID, err)
		}
	}

	return s.cartRepo.Delete(line.ID)
}

// ClearCart deletes every cart line for an owner without restoring stock.
// It is called after checkout, when the reserved units have become order
// items.
func (s *CartService) ClearCart(ownerID string) error {
	return s.cartRepo.DeleteByOwner(ownerID)
}
