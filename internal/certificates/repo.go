package certificates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/pkg/db/models"
)

// Repository wires together certificate persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new certificate row.
func (r *Repository) Create(ctx context.Context, certificate *models.Certificate) (*models.Certificate, error) {
	if err := r.db.WithContext(ctx).Create(certificate).Error; err != nil {
		return nil, err
	}
	return certificate, nil
}

// FindByID loads a single certificate.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	var certificate models.Certificate
	if err := r.db.WithContext(ctx).First(&certificate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &certificate, nil
}

// Save updates an existing certificate row.
func (r *Repository) Save(ctx context.Context, certificate *models.Certificate) (*models.Certificate, error) {
	if err := r.db.WithContext(ctx).Save(certificate).Error; err != nil {
		return nil, err
	}
	return certificate, nil
}

// Delete removes a certificate by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Certificate{}).Error
}

// List returns every certificate, most recently issued first.
func (r *Repository) List(ctx context.Context) ([]models.Certificate, error) {
	var certificates []models.Certificate
	err := r.db.WithContext(ctx).Order("issue_date DESC").Find(&certificates).Error
	if err != nil {
		return nil, err
	}
	return certificates, nil
}
