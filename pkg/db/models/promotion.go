package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/pkg/enums"
)

// Promotion is a time-boxed campaign over a set of products in one region.
type Promotion struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Title       string                `gorm:"column:title;not null"`
	Description string                `gorm:"column:description"`
	ImageURL    string                `gorm:"column:image_url"`
	StartDate   time.Time             `gorm:"column:start_date;not null"`
	EndDate     time.Time             `gorm:"column:end_date;not null"`
	Region      enums.PromotionRegion `gorm:"column:region;not null;default:'nationwide'"`
	ProductIDs  []uuid.UUID           `gorm:"column:product_ids;serializer:json"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedBy   uuid.UUID             `gorm:"column:created_by;type:uuid"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Promotion) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EligibleAt reports whether the promotion can be applied at the given time:
// active and inside the [StartDate, EndDate] window.
func (p Promotion) EligibleAt(t time.Time) bool {
	if !p.IsActive {
		return false
	}
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}
