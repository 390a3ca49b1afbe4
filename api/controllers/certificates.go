package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fremed/fremed-backend/api/responses"
	"github.com/fremed/fremed-backend/api/validators"
	certsvc "github.com/fremed/fremed-backend/internal/certificates"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/logger"
)

type createCertificateRequest struct {
	Title             string    `json:"title" validate:"required,min=2,max=128"`
	Description       string    `json:"description" validate:"max=512"`
	CertificateNumber string    `json:"certificate_number" validate:"required,max=64"`
	IssueDate         time.Time `json:"issue_date" validate:"required"`
	ExpiryDate        time.Time `json:"expiry_date" validate:"required"`
	IssuingAuthority  string    `json:"issuing_authority" validate:"required,max=128"`
	DocumentURL       string    `json:"document_url" validate:"omitempty,max=512"`
	ProductIDs        []string  `json:"product_ids" validate:"omitempty,dive,uuid"`
	Pending           bool      `json:"pending"`
}

type updateCertificateRequest struct {
	Title             *string    `json:"title,omitempty" validate:"omitempty,min=2,max=128"`
	Description       *string    `json:"description,omitempty" validate:"omitempty,max=512"`
	CertificateNumber *string    `json:"certificate_number,omitempty" validate:"omitempty,max=64"`
	IssueDate         *time.Time `json:"issue_date,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	IssuingAuthority  *string    `json:"issuing_authority,omitempty" validate:"omitempty,max=128"`
	DocumentURL       *string    `json:"document_url,omitempty" validate:"omitempty,max=512"`
	ProductIDs        []string   `json:"product_ids,omitempty" validate:"omitempty,dive,uuid"`
	Pending           *bool      `json:"pending,omitempty"`
}

// CertificateList serves certificates with an optional derived-status filter.
func CertificateList(svc certsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var statusFilter *enums.CertificateStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseCertificateStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			statusFilter = &status
		}

		certificates, err := svc.List(r.Context(), statusFilter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, certificates)
	}
}

// CertificateDetail serves one certificate.
func CertificateDetail(svc certsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := validators.ParsePathUUID(chi.URLParam(r, "certificateId"), "certificateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		certificate, err := svc.Get(r.Context(), certificateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, certificate)
	}
}

// CertificateCreate registers a certificate.
func CertificateCreate(svc certsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCertificateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productIDs, err := parseUUIDList(payload.ProductIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		certificate, err := svc.Create(r.Context(), certsvc.CreateInput{
			Title:             validators.SanitizeString(payload.Title, 128),
			Description:       validators.SanitizeString(payload.Description, 512),
			CertificateNumber: validators.SanitizeString(payload.CertificateNumber, 64),
			IssueDate:         payload.IssueDate,
			ExpiryDate:        payload.ExpiryDate,
			IssuingAuthority:  validators.SanitizeString(payload.IssuingAuthority, 128),
			DocumentURL:       validators.SanitizeString(payload.DocumentURL, 512),
			ProductIDs:        productIDs,
			Pending:           payload.Pending,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, certificate)
	}
}

// CertificateUpdate applies a partial update to a certificate.
func CertificateUpdate(svc certsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := validators.ParsePathUUID(chi.URLParam(r, "certificateId"), "certificateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCertificateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := certsvc.UpdateInput{
			Title:             payload.Title,
			Description:       payload.Description,
			CertificateNumber: payload.CertificateNumber,
			IssueDate:         payload.IssueDate,
			ExpiryDate:        payload.ExpiryDate,
			IssuingAuthority:  payload.IssuingAuthority,
			DocumentURL:       payload.DocumentURL,
			Pending:           payload.Pending,
		}
		if payload.ProductIDs != nil {
			productIDs, err := parseUUIDList(payload.ProductIDs)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ProductIDs = productIDs
		}

		certificate, err := svc.Update(r.Context(), certificateID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, certificate)
	}
}

// CertificateDelete removes a certificate.
func CertificateDelete(svc certsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := validators.ParsePathUUID(chi.URLParam(r, "certificateId"), "certificateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), certificateID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CertificateExport serves the plain-text certificate document.
func CertificateExport(svc certsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := validators.ParsePathUUID(chi.URLParam(r, "certificateId"), "certificateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Export(r.Context(), certificateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteText(w, "certificate-"+certificateID.String()+".txt", doc)
	}
}
