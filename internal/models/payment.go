package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment methods accepted at checkout. Card-detail validation applies
// only to PaymentCreditCard.
const (
	PaymentCreditCard     = "credit_card"
	PaymentCashOnDelivery = "cash_on_delivery"
)

// Payment records a settled checkout amount against an order. Only the
// last four card digits are stored.
type Payment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string    `json:"order_id" gorm:"index;type:varchar(36)"`
	UserID     string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Method     string    `json:"method" gorm:"type:varchar(30)"`
	CardLast4  string    `json:"card_last4,omitempty" gorm:"type:varchar(4)"`
	Amount     float64   `json:"amount"`
	PaidAt     time.Time `json:"paid_at"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
