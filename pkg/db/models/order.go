package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/pkg/enums"
)

// Order is an immutable record of a finalized checkout. Line items are
// snapshots; only status and a few metadata fields may change afterwards.
// FinalAmount is frozen at creation as TotalAmount - DiscountAmount +
// DeliveryFee.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber     string               `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID      string               `gorm:"column:customer_id;not null"`
	CustomerName    string               `gorm:"column:customer_name;not null"`
	CustomerPhone   string               `gorm:"column:customer_phone;not null"`
	CustomerAddress string               `gorm:"column:customer_address;not null"`
	TotalAmount     int                  `gorm:"column:total_amount;not null"`
	DiscountAmount  int                  `gorm:"column:discount_amount;not null;default:0"`
	DeliveryFee     int                  `gorm:"column:delivery_fee;not null;default:0"`
	FinalAmount     int                  `gorm:"column:final_amount;not null"`
	DeliveryOption  enums.DeliveryOption `gorm:"column:delivery_option;not null;default:'standard'"`
	PromotionID     *uuid.UUID           `gorm:"column:promotion_id;type:uuid"`
	Status          enums.OrderStatus    `gorm:"column:status;not null;default:'pending'"`
	Notes           *string              `gorm:"column:notes"`
	DeliveryDate    *time.Time           `gorm:"column:delivery_date"`
	CreatedBy       uuid.UUID            `gorm:"column:created_by;type:uuid;not null"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
