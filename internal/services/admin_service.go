package services

import (
	"fmt"

	"devicestore/internal/models"
	"devicestore/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AdminService handles staff/admin user account management. Accounts are
// deactivated, never physically deleted.
type AdminService struct {
	userRepo repositories.UserRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repositories.UserRepository) *AdminService {
	return &AdminService{
		userRepo: userRepo,
	}
}

// ListUsers retrieves every user account.
func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// CreateUser creates an account with an explicit role, for staff/admin
// provisioning. The password is hashed before storage.
func (s *AdminService) CreateUser(user *models.User) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return fmt.Errorf("username '%s' already taken", user.Username)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered", user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	user.Active = true
	return s.userRepo.Create(user)
}

// UpdateUser modifies an account's email, role and active flag. Zero-value
// fields are left unchanged; a nil active pointer keeps the current flag.
func (s *AdminService) UpdateUser(id string, email, role string, active *bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if role != "" {
		user.Role = role
	}
	if active != nil {
		user.Active = *active
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivateUser marks an account inactive so it can no longer log in.
func (s *AdminService) DeactivateUser(id string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	user.Active = false
	return s.userRepo.Update(user)
}
