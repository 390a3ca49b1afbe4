package certificates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
)

// Service manages regulatory certificates.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CertificateDTO, error)
	Update(ctx context.Context, certificateID uuid.UUID, input UpdateInput) (*CertificateDTO, error)
	Delete(ctx context.Context, certificateID uuid.UUID) error
	Get(ctx context.Context, certificateID uuid.UUID) (*CertificateDTO, error)
	List(ctx context.Context, statusFilter *enums.CertificateStatus) ([]CertificateDTO, error)
	Export(ctx context.Context, certificateID uuid.UUID) (string, error)
}

// CreateInput holds the validated payload to create a certificate.
type CreateInput struct {
	Title             string
	Description       string
	CertificateNumber string
	IssueDate         time.Time
	ExpiryDate        time.Time
	IssuingAuthority  string
	DocumentURL       string
	ProductIDs        []uuid.UUID
	Pending           bool
}

// UpdateInput holds optional mutation values for a certificate.
type UpdateInput struct {
	Title             *string
	Description       *string
	CertificateNumber *string
	IssueDate         *time.Time
	ExpiryDate        *time.Time
	IssuingAuthority  *string
	DocumentURL       *string
	ProductIDs        []uuid.UUID
	Pending           *bool
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a certificates service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("certificates repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Create validates the validity window and inserts the certificate.
func (s *service) Create(ctx context.Context, input CreateInput) (*CertificateDTO, error) {
	if input.ExpiryDate.Before(input.IssueDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry date cannot precede issue date")
	}

	certificate := &models.Certificate{
		Title:             input.Title,
		Description:       input.Description,
		CertificateNumber: input.CertificateNumber,
		IssueDate:         input.IssueDate,
		ExpiryDate:        input.ExpiryDate,
		IssuingAuthority:  input.IssuingAuthority,
		DocumentURL:       input.DocumentURL,
		ProductIDs:        input.ProductIDs,
		Pending:           input.Pending,
	}

	created, err := s.repo.Create(ctx, certificate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert certificate")
	}
	return s.toDTO(created), nil
}

// Update applies the provided partial changes to a certificate.
func (s *service) Update(ctx context.Context, certificateID uuid.UUID, input UpdateInput) (*CertificateDTO, error) {
	certificate, err := s.repo.FindByID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "certificate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load certificate")
	}

	if input.Title != nil {
		certificate.Title = *input.Title
	}
	if input.Description != nil {
		certificate.Description = *input.Description
	}
	if input.CertificateNumber != nil {
		certificate.CertificateNumber = *input.CertificateNumber
	}
	if input.IssueDate != nil {
		certificate.IssueDate = *input.IssueDate
	}
	if input.ExpiryDate != nil {
		certificate.ExpiryDate = *input.ExpiryDate
	}
	if certificate.ExpiryDate.Before(certificate.IssueDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry date cannot precede issue date")
	}
	if input.IssuingAuthority != nil {
		certificate.IssuingAuthority = *input.IssuingAuthority
	}
	if input.DocumentURL != nil {
		certificate.DocumentURL = *input.DocumentURL
	}
	if input.ProductIDs != nil {
		certificate.ProductIDs = input.ProductIDs
	}
	if input.Pending != nil {
		certificate.Pending = *input.Pending
	}

	saved, err := s.repo.Save(ctx, certificate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update certificate")
	}
	return s.toDTO(saved), nil
}

// Delete removes a certificate.
func (s *service) Delete(ctx context.Context, certificateID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, certificateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "certificate not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load certificate")
	}
	if err := s.repo.Delete(ctx, certificateID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete certificate")
	}
	return nil
}

// Get loads a single certificate.
func (s *service) Get(ctx context.Context, certificateID uuid.UUID) (*CertificateDTO, error) {
	certificate, err := s.repo.FindByID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "certificate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load certificate")
	}
	return s.toDTO(certificate), nil
}

// List returns certificates, optionally filtered by their derived status.
func (s *service) List(ctx context.Context, statusFilter *enums.CertificateStatus) ([]CertificateDTO, error) {
	if statusFilter != nil && !statusFilter.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown certificate status").
			WithDetails(map[string]any{"status": statusFilter.String()})
	}

	certificates, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list certificates")
	}

	now := s.now()
	dtos := make([]CertificateDTO, 0, len(certificates))
	for i := range certificates {
		if statusFilter != nil && certificates[i].StatusAt(now) != *statusFilter {
			continue
		}
		dtos = append(dtos, *s.toDTO(&certificates[i]))
	}
	return dtos, nil
}

// Export renders a certificate as a plain-text document.
func (s *service) Export(ctx context.Context, certificateID uuid.UUID) (string, error) {
	certificate, err := s.repo.FindByID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "certificate not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load certificate")
	}
	return renderExport(certificate, s.now()), nil
}
