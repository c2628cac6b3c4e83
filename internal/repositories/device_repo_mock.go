package repositories

import (
	"fmt"
	"sync"

	"devicestore/internal/models"

	"github.com/google/uuid"
)

// MockDeviceRepository is an in-memory implementation of DeviceRepository.
type MockDeviceRepository struct {
	devices map[string]models.Device
	mu      sync.RWMutex
}

// NewMockDeviceRepository creates a new instance of MockDeviceRepository.
func NewMockDeviceRepository() *MockDeviceRepository {
	return &MockDeviceRepository{
		devices: make(map[string]models.Device),
	}
}

// GetAll returns all devices.
func (r *MockDeviceRepository) GetAll() ([]models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deviceList := make([]models.Device, 0, len(r.devices))
	for _, d := range r.devices {
		deviceList = append(deviceList, d)
	}
	return deviceList, nil
}

// GetByID returns a device by its ID.
func (r *MockDeviceRepository) GetByID(id string) (*models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	device, ok := r.devices[id]
	if !ok {
		return nil, fmt.Errorf("device %s: %w", id, models.ErrNotFound)
	}
	return &device, nil
}

// Create adds a new device.
func (r *MockDeviceRepository) Create(device *models.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if device.ID == "" {
		device.ID = uuid.New().String()
	}
	r.devices[device.ID] = *device
	return nil
}

// Update modifies an existing device.
func (r *MockDeviceRepository) Update(device *models.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.devices[device.ID]
	if !ok {
		return fmt.Errorf("device %s for update: %w", device.ID, models.ErrNotFound)
	}
	r.devices[device.ID] = *device
	return nil
}

// Delete removes a device by its ID.
func (r *MockDeviceRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.devices[id]
	if !ok {
		return fmt.Errorf("device %s for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.devices, id)
	return nil
}
