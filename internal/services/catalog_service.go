package services

import (
	"context"
	"time"

	"devicestore/internal/models"
	"devicestore/internal/repositories"
	"devicestore/pkg/cache"
)

// deviceCacheTTL bounds how stale a cached device read may be. Stock
// mutations from the cart/order flows go straight to the store, so the
// cached snapshot can lag by up to this much.
const deviceCacheTTL = time.Minute

// CatalogService handles business logic related to the device catalog.
type CatalogService struct {
	repo  repositories.DeviceRepository
	cache *cache.Client
}

// NewCatalogService creates a new CatalogService. cacheClient may be nil.
func NewCatalogService(repo repositories.DeviceRepository, cacheClient *cache.Client) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cacheClient,
	}
}

func deviceCacheKey(id string) string {
	return "device:" + id
}

// GetAllDevices retrieves all devices.
func (s *CatalogService) GetAllDevices() ([]models.Device, error) {
	return s.repo.GetAll()
}

// GetDeviceByID retrieves a single device, read-through cached.
func (s *CatalogService) GetDeviceByID(ctx context.Context, id string) (*models.Device, error) {
	var cached models.Device
	if s.cache.GetJSON(ctx, deviceCacheKey(id), &cached) {
		return &cached, nil
	}

	device, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, deviceCacheKey(id), device, deviceCacheTTL)
	return device, nil
}

// CreateDevice creates a new device.
func (s *CatalogService) CreateDevice(device *models.Device) error {
	return s.repo.Create(device)
}

// UpdateDevice updates an existing device and invalidates its cache entry.
func (s *CatalogService) UpdateDevice(ctx context.Context, device *models.Device) error {
	if err := s.repo.Update(device); err != nil {
		return err
	}
	s.cache.Delete(ctx, deviceCacheKey(device.ID))
	return nil
}

// DeleteDevice deletes a device by its ID and invalidates its cache entry.
func (s *CatalogService) DeleteDevice(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.cache.Delete(ctx, deviceCacheKey(id))
	return nil
}
