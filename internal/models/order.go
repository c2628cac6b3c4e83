package models

import "gorm.io/gorm"

// Order statuses. Placed is the initial state. The payment workflow moves
// Placed to Confirmed; cancellation moves Placed to Cancelled and restores
// stock. Completed is the terminal fulfillment state, reachable only via
// explicit staff action.
const (
	OrderPlaced    = "placed"
	OrderConfirmed = "confirmed"
	OrderCancelled = "cancelled"
	OrderCompleted = "completed"
)

// ValidOrderStatus reports whether s is a recognized order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPlaced, OrderConfirmed, OrderCancelled, OrderCompleted:
		return true
	}
	return false
}

// Order represents one checkout transaction. Either UserID or GuestToken
// is set; GuestToken carries the anonymous-session identifier recorded at
// creation time and must be presented again for guest cancellation.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string      `json:"user_id" gorm:"index;type:varchar(36)"`
	GuestToken  string      `json:"-" gorm:"index;type:varchar(36)"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status" gorm:"type:varchar(20);default:placed"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// OrderItem is a frozen snapshot of one purchased line: device, quantity
// and the unit price at order time, decoupled from later catalog changes.
type OrderItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string  `json:"order_id" gorm:"index;type:varchar(36)"`
	DeviceID   string  `json:"device_id" gorm:"type:varchar(36)"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
