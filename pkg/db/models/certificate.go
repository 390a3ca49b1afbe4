package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/pkg/enums"
)

// Certificate is a regulatory document tied to a set of products. Pending is
// an explicit override; otherwise the presented status follows the validity
// window.
type Certificate struct {
	ID                uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	Title             string      `gorm:"column:title;not null"`
	Description       string      `gorm:"column:description"`
	CertificateNumber string      `gorm:"column:certificate_number;not null;uniqueIndex"`
	IssueDate         time.Time   `gorm:"column:issue_date;not null"`
	ExpiryDate        time.Time   `gorm:"column:expiry_date;not null"`
	IssuingAuthority  string      `gorm:"column:issuing_authority;not null"`
	DocumentURL       string      `gorm:"column:document_url"`
	ProductIDs        []uuid.UUID `gorm:"column:product_ids;serializer:json"`
	Pending           bool        `gorm:"column:pending;not null;default:false"`
	CreatedAt         time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Certificate) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// StatusAt derives the presented status at the given time.
func (c Certificate) StatusAt(t time.Time) enums.CertificateStatus {
	if c.Pending {
		return enums.CertificateStatusPending
	}
	if t.After(c.ExpiryDate) {
		return enums.CertificateStatusExpired
	}
	return enums.CertificateStatusActive
}
