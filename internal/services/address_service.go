package services

import (
	"fmt"

	"devicestore/internal/models"
	"devicestore/internal/repositories"
)

// AddressService handles a user's delivery addresses.
type AddressService struct {
	repo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{
		repo: repo,
	}
}

// GetAddresses retrieves the caller's addresses, oldest first.
func (s *AddressService) GetAddresses(ownerID string) ([]models.Address, error) {
	return s.repo.GetByUser(ownerID)
}

// GetAddress retrieves one address owned by the caller.
func (s *AddressService) GetAddress(id, ownerID string) (*models.Address, error) {
	address, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if address.UserID != ownerID {
		return nil, fmt.Errorf("address %s: %w", id, models.ErrForbidden)
	}
	return address, nil
}

// CreateAddress stores a new address for the caller.
func (s *AddressService) CreateAddress(address *models.Address) error {
	return s.repo.Create(address)
}

// UpdateAddress modifies an address owned by the caller.
func (s *AddressService) UpdateAddress(id, ownerID string, update *models.Address) (*models.Address, error) {
	address, err := s.GetAddress(id, ownerID)
	if err != nil {
		return nil, err
	}

	address.Label = update.Label
	address.Street = update.Street
	address.City = update.City
	address.Postcode = update.Postcode
	address.Country = update.Country

	if err := s.repo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress removes an address owned by the caller.
func (s *AddressService) DeleteAddress(id, ownerID string) error {
	if _, err := s.GetAddress(id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
