package repositories

import (
	"fmt"

	"devicestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderLogRepository is a GORM implementation of OrderLogRepository.
type GORMOrderLogRepository struct {
	db *gorm.DB
}

// NewGORMOrderLogRepository creates a new instance of GORMOrderLogRepository.
func NewGORMOrderLogRepository(db *gorm.DB) *GORMOrderLogRepository {
	return &GORMOrderLogRepository{
		db: db,
	}
}

// Append stores a new audit entry.
func (r *GORMOrderLogRepository) Append(entry *models.OrderLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append order log: %w", err)
	}
	return nil
}

// GetByOrderID retrieves the audit trail of one order, oldest first.
func (r *GORMOrderLogRepository) GetByOrderID(orderID string) ([]models.OrderLog, error) {
	var entries []models.OrderLog
	if err := r.db.Where("order_id = ?", orderID).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get logs for order %s: %w", orderID, err)
	}
	return entries, nil
}

// GetAll retrieves every audit entry, newest first.
func (r *GORMOrderLogRepository) GetAll() ([]models.OrderLog, error) {
	var entries []models.OrderLog
	if err := r.db.Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get all order logs: %w", err)
	}
	return entries, nil
}

// GORMAccessLogRepository is a GORM implementation of AccessLogRepository.
type GORMAccessLogRepository struct {
	db *gorm.DB
}

// NewGORMAccessLogRepository creates a new instance of GORMAccessLogRepository.
func NewGORMAccessLogRepository(db *gorm.DB) *GORMAccessLogRepository {
	return &GORMAccessLogRepository{
		db: db,
	}
}

// Append stores a new access log entry.
func (r *GORMAccessLogRepository) Append(entry *models.AccessLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append access log: %w", err)
	}
	return nil
}
