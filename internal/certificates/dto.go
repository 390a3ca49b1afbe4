package certificates

import (
	"time"

	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
)

// CertificateDTO is the API-facing certificate shape. Status is derived at
// read time from the pending flag and the validity window.
type CertificateDTO struct {
	ID                uuid.UUID               `json:"id"`
	Title             string                  `json:"title"`
	Description       string                  `json:"description,omitempty"`
	CertificateNumber string                  `json:"certificate_number"`
	IssueDate         time.Time               `json:"issue_date"`
	ExpiryDate        time.Time               `json:"expiry_date"`
	IssuingAuthority  string                  `json:"issuing_authority"`
	DocumentURL       string                  `json:"document_url,omitempty"`
	ProductIDs        []uuid.UUID             `json:"product_ids"`
	Status            enums.CertificateStatus `json:"status"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

func (s *service) toDTO(certificate *models.Certificate) *CertificateDTO {
	if certificate == nil {
		return nil
	}
	return &CertificateDTO{
		ID:                certificate.ID,
		Title:             certificate.Title,
		Description:       certificate.Description,
		CertificateNumber: certificate.CertificateNumber,
		IssueDate:         certificate.IssueDate,
		ExpiryDate:        certificate.ExpiryDate,
		IssuingAuthority:  certificate.IssuingAuthority,
		DocumentURL:       certificate.DocumentURL,
		ProductIDs:        certificate.ProductIDs,
		Status:            certificate.StatusAt(s.now()),
		CreatedAt:         certificate.CreatedAt,
		UpdatedAt:         certificate.UpdatedAt,
	}
}
