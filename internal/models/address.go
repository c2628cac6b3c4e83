package models

import "gorm.io/gorm"

// Address is a delivery address owned by a user (or a guest token for
// placeholder addresses synthesized by the shipment workflow).
type Address struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	Label      string `json:"label" validate:"omitempty,max=50"`
	Street     string `json:"street" validate:"required,min=3,max=200"`
	City       string `json:"city" validate:"required,min=2,max=100"`
	Postcode   string `json:"postcode" validate:"required,min=3,max=12"`
	Country    string `json:"country" validate:"required,min=2,max=100"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
