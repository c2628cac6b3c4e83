package repositories

import (
	"devicestore/internal/models"
)

// OrderLogRepository defines the interface for the append-only order
// audit log. Entries are never updated or deleted.
type OrderLogRepository interface {
	Append(entry *models.OrderLog) error
	GetByOrderID(orderID string) ([]models.OrderLog, error)
	GetAll() ([]models.OrderLog, error)
}

// AccessLogRepository records login/logout events.
type AccessLogRepository interface {
	Append(entry *models.AccessLog) error
}
