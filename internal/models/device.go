package models

import "gorm.io/gorm"

// Device represents a sellable catalog item.
//
// Stock is the number of units neither reserved in a cart nor sold in a
// non-cancelled order: AddToCart decrements it immediately, cart removal
// and order cancellation restore it. Checkout never touches it again.
type Device struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Brand       string  `json:"brand" validate:"omitempty,max=100"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
