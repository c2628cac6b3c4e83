package models

import "gorm.io/gorm"

// CartItem is one (owner, device) line in a cart. OwnerID holds either a
// user ID or, for anonymous sessions, a guest token. One row per pair;
// repeated adds increment Quantity.
type CartItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID    string `json:"owner_id" gorm:"index:idx_cart_owner_device,unique;type:varchar(36)" validate:"required"`
	DeviceID   string `json:"device_id" gorm:"index:idx_cart_owner_device,unique;type:varchar(36)" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
