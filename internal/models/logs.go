package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order log actions. The log is append-only and read purely for audit.
const (
	ActionOrderCreated     = "ORDER_CREATED"
	ActionPaymentAdded     = "PAYMENT_ADDED"
	ActionPaymentConfirmed = "PAYMENT_CONFIRMED"
	ActionShipmentCreated  = "SHIPMENT_CREATED"
	ActionOrderCancelled   = "ORDER_CANCELLED"
	ActionOrderUpdated     = "ORDER_UPDATED"
	ActionStatusChanged    = "ORDER_STATUS_CHANGED"
)

// RequestMeta carries the request metadata recorded with audit entries.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// OrderLog is one append-only audit entry for an order. Details holds a
// JSON blob of contextual data (item summaries, amounts, state changes).
type OrderLog struct {
	ID         string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string         `json:"order_id" gorm:"index;type:varchar(36)"`
	UserID     string         `json:"user_id,omitempty" gorm:"type:varchar(36)"`
	Action     string         `json:"action" gorm:"type:varchar(40)"`
	Details    datatypes.JSON `json:"details"`
	IP         string         `json:"ip" gorm:"type:varchar(45)"`
	UserAgent  string         `json:"user_agent" gorm:"type:varchar(255)"`
	gorm.Model                // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// AccessLog records a login or logout event for a user account.
type AccessLog struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)"`
	Action     string `json:"action" gorm:"type:varchar(20)"`
	IP         string `json:"ip" gorm:"type:varchar(45)"`
	UserAgent  string `json:"user_agent" gorm:"type:varchar(255)"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
