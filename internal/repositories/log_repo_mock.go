package repositories

import (
	"sync"

	"devicestore/internal/models"

	"github.com/google/uuid"
)

// MockOrderLogRepository is an in-memory implementation of OrderLogRepository.
type MockOrderLogRepository struct {
	entries []models.OrderLog
	mu      sync.RWMutex
}

// NewMockOrderLogRepository creates a new instance of MockOrderLogRepository.
func NewMockOrderLogRepository() *MockOrderLogRepository {
	return &MockOrderLogRepository{}
}

// Append stores a new audit entry.
func (r *MockOrderLogRepository) Append(entry *models.OrderLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

// GetByOrderID returns the audit trail of one order in append order.
func (r *MockOrderLogRepository) GetByOrderID(orderID string) ([]models.OrderLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []models.OrderLog
	for _, e := range r.entries {
		if e.OrderID == orderID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// GetAll returns every audit entry in append order.
func (r *MockOrderLogRepository) GetAll() ([]models.OrderLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]models.OrderLog, len(r.entries))
	copy(entries, r.entries)
	return entries, nil
}

// MockAccessLogRepository is an in-memory implementation of AccessLogRepository.
type MockAccessLogRepository struct {
	entries []models.AccessLog
	mu      sync.Mutex
}

// NewMockAccessLogRepository creates a new instance of MockAccessLogRepository.
func NewMockAccessLogRepository() *MockAccessLogRepository {
	return &MockAccessLogRepository{}
}

// Append stores a new access log entry.
func (r *MockAccessLogRepository) Append(entry *models.AccessLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

// Entries returns the stored access log entries in append order.
func (r *MockAccessLogRepository) Entries() []models.AccessLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]models.AccessLog, len(r.entries))
	copy(entries, r.entries)
	return entries
}
