package models

import (
	"time"

	"gorm.io/gorm"
)

// ShipmentStandard is the method assigned to auto-created shipments.
const ShipmentStandard = "standard"

// Shipment is the delivery record for an order. At most one per order,
// enforced by the workflow, not by a database constraint. Once Finalised
// is set, edits, deletion and re-finalization are all rejected.
type Shipment struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID       string    `json:"order_id" gorm:"index;type:varchar(36)"`
	AddressID     string    `json:"address_id" gorm:"type:varchar(36)"`
	Method        string    `json:"method" gorm:"type:varchar(30);default:standard" validate:"omitempty,max=30"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Finalised     bool      `json:"finalised" gorm:"default:false"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
