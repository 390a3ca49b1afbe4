package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog listing. Price is VND per package; PricePerUnit is the
// optional per-pill price.
type Product struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Code             string     `gorm:"column:code;not null;uniqueIndex"`
	Name             string     `gorm:"column:name;not null"`
	Description      string     `gorm:"column:description;not null"`
	CategoryID       uuid.UUID  `gorm:"column:category_id;type:uuid;not null;index"`
	Price            int        `gorm:"column:price;not null"`
	PricePerUnit     *int       `gorm:"column:price_per_unit"`
	ImageURL         string     `gorm:"column:image_url"`
	ActiveIngredient string     `gorm:"column:active_ingredient"`
	Specification    string     `gorm:"column:specification"`
	Stock            int        `gorm:"column:stock;not null;default:0"`
	IsActive         bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
