package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is a frozen snapshot of one order line. It carries the product
// name and unit price as of checkout, not a live catalog reference.
type OrderItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName string    `gorm:"column:product_name;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	UnitPrice   int       `gorm:"column:unit_price;not null"`
	TotalPrice  int       `gorm:"column:total_price;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (o *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
