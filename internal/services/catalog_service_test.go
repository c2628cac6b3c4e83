package services_test

import (
	"context"
	"fmt"
	"testing"

	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDeviceRepo is a mock implementation of repositories.DeviceRepository
type MockDeviceRepo struct {
	mock.Mock
}

func (m *MockDeviceRepo) GetAll() ([]models.Device, error) {
	args := m.Called()
	return args.Get(0).([]models.Device), args.Error(1)
}

func (m *MockDeviceRepo) GetByID(id string) (*models.Device, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceRepo) Create(device *models.Device) error {
	args := m.Called(device)
	return args.Error(0)
}

func (m *MockDeviceRepo) Update(device *models.Device) error {
	args := m.Called(device)
	return args.Error(0)
}

func (m *MockDeviceRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestCatalogService_GetAllDevices(t *testing.T) {
	mockRepo := new(MockDeviceRepo)
	service := services.NewCatalogService(mockRepo, nil)

	expectedDevices := []models.Device{
		{ID: "1", Name: "Router AX3000", Price: 149.99, Stock: 40},
		{ID: "2", Name: "Smart Thermostat", Price: 219.00, Stock: 25},
	}

	mockRepo.On("GetAll").Return(expectedDevices, nil).Once()

	devices, err := service.GetAllDevices()

	assert.NoError(t, err)
	assert.Len(t, devices, 2)
	assert.Equal(t, expectedDevices, devices)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetDeviceByID(t *testing.T) {
	mockRepo := new(MockDeviceRepo)
	service := services.NewCatalogService(mockRepo, nil)

	expectedDevice := &models.Device{ID: "1", Name: "Router AX3000", Price: 149.99, Stock: 40}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedDevice, nil).Once()
	device, err := service.GetDeviceByID(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedDevice, device)
	mockRepo.AssertExpectations(t)

	// Test device not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("device 99: %w", models.ErrNotFound)).Once()
	device, err = service.GetDeviceByID(context.Background(), "99")
	assert.Error(t, err)
	assert.Nil(t, device)
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_CreateDevice(t *testing.T) {
	mockRepo := new(MockDeviceRepo)
	service := services.NewCatalogService(mockRepo, nil)

	newDevice := &models.Device{Name: "Indoor Camera", Price: 35.99, Stock: 120}

	// Test successful creation
	mockRepo.On("Create", newDevice).Return(nil).Once()
	err := service.CreateDevice(newDevice)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newDevice).Return(fmt.Errorf("database error")).Once()
	err = service.CreateDevice(newDevice)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_UpdateDevice(t *testing.T) {
	mockRepo := new(MockDeviceRepo)
	service := services.NewCatalogService(mockRepo, nil)

	updatedDevice := &models.Device{ID: "1", Name: "Router AX3000 v2", Price: 159.99, Stock: 38}

	mockRepo.On("Update", updatedDevice).Return(nil).Once()
	err := service.UpdateDevice(context.Background(), updatedDevice)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteDevice(t *testing.T) {
	mockRepo := new(MockDeviceRepo)
	service := services.NewCatalogService(mockRepo, nil)

	// Test successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteDevice(context.Background(), "1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (e.g., device not found)
	mockRepo.On("Delete", "99").Return(fmt.Errorf("device 99: %w", models.ErrNotFound)).Once()
	err = service.DeleteDevice(context.Background(), "99")
	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
