package services_test

import (
	"testing"

	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminService_CreateUserWithRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAdminService(mockRepo)

	user := &models.User{
		Username: "warehouse",
		Email:    "warehouse@example.com",
		Password: "password123",
		Role:     models.RoleStaff,
	}

	mockRepo.On("GetByUsername", user.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	assert.NoError(t, service.CreateUser(user))
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.True(t, user.Active)

	// The stored password is a bcrypt hash, not the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestAdminService_UpdateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAdminService(mockRepo)

	stored := &models.User{ID: "user-1", Username: "alex", Email: "old@example.com", Role: models.RoleCustomer, Active: true}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := service.UpdateUser("user-1", "new@example.com", models.RoleStaff, nil)
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.True(t, user.Active)
	mockRepo.AssertExpectations(t)
}

func TestAdminService_UpdateUserActiveFlag(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAdminService(mockRepo)

	// An email-only edit must not touch the active flag.
	stored := &models.User{ID: "user-1", Username: "alex", Email: "old@example.com", Role: models.RoleCustomer, Active: true}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Twice()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Twice()

	user, err := service.UpdateUser("user-1", "new@example.com", "", nil)
	assert.NoError(t, err)
	assert.True(t, user.Active)

	inactive := false
	user, err = service.UpdateUser("user-1", "", "", &inactive)
	assert.NoError(t, err)
	assert.False(t, user.Active)
	mockRepo.AssertExpectations(t)
}

func TestAdminService_DeactivateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAdminService(mockRepo)

	stored := &models.User{ID: "user-1", Username: "alex", Active: true}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	assert.NoError(t, service.DeactivateUser("user-1"))
	assert.False(t, stored.Active)
	mockRepo.AssertExpectations(t)
}
