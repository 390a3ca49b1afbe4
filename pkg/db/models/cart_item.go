package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is a single cart line for a user. Product fields are denormalized
// at add time so later catalog edits do not change what the cart shows.
// One line per (user, product).
type CartItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductName string    `gorm:"column:product_name;not null"`
	ProductCode string    `gorm:"column:product_code;not null"`
	UnitPrice   int       `gorm:"column:unit_price;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *CartItem) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// LineTotal is the snapshot unit price times quantity.
func (c CartItem) LineTotal() int {
	return c.UnitPrice * c.Quantity
}
