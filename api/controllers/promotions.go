package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/api/responses"
	"github.com/fremed/fremed-backend/api/validators"
	promosvc "github.com/fremed/fremed-backend/internal/promotions"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/logger"
)

type createPromotionRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=128"`
	Description string    `json:"description" validate:"max=512"`
	ImageURL    string    `json:"image_url" validate:"omitempty,max=512"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Region      string    `json:"region" validate:"required"`
	ProductIDs  []string  `json:"product_ids" validate:"omitempty,dive,uuid"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

type updatePromotionRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=2,max=128"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=512"`
	ImageURL    *string    `json:"image_url,omitempty" validate:"omitempty,max=512"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Region      *string    `json:"region,omitempty"`
	ProductIDs  []string   `json:"product_ids,omitempty" validate:"omitempty,dive,uuid"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func parseUUIDList(raw []string) ([]uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id list")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// PromotionList serves promotions; eligible_only narrows to campaigns that
// can be applied right now.
func PromotionList(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eligibleOnly, err := validators.ParseQueryBool(r, "eligible_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promotions, err := svc.List(r.Context(), eligibleOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promotions)
	}
}

// PromotionDetail serves one promotion.
func PromotionDetail(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promotionID, err := validators.ParsePathUUID(chi.URLParam(r, "promotionId"), "promotionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promotion, err := svc.Get(r.Context(), promotionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promotion)
	}
}

// PromotionCreate adds a campaign.
func PromotionCreate(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		region, err := enums.ParsePromotionRegion(strings.TrimSpace(payload.Region))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid region"))
			return
		}

		productIDs, err := parseUUIDList(payload.ProductIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var createdBy uuid.UUID
		if userID, err := cartUserID(r); err == nil {
			createdBy = userID
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		promotion, err := svc.Create(r.Context(), promosvc.CreateInput{
			Title:       validators.SanitizeString(payload.Title, 128),
			Description: validators.SanitizeString(payload.Description, 512),
			ImageURL:    validators.SanitizeString(payload.ImageURL, 512),
			StartDate:   payload.StartDate,
			EndDate:     payload.EndDate,
			Region:      region,
			ProductIDs:  productIDs,
			IsActive:    isActive,
			CreatedBy:   createdBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, promotion)
	}
}

// PromotionUpdate applies a partial update to a campaign.
func PromotionUpdate(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promotionID, err := validators.ParsePathUUID(chi.URLParam(r, "promotionId"), "promotionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := promosvc.UpdateInput{
			Title:       payload.Title,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			StartDate:   payload.StartDate,
			EndDate:     payload.EndDate,
			IsActive:    payload.IsActive,
		}

		if payload.Region != nil {
			region, err := enums.ParsePromotionRegion(strings.TrimSpace(*payload.Region))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid region"))
				return
			}
			input.Region = &region
		}
		if payload.ProductIDs != nil {
			productIDs, err := parseUUIDList(payload.ProductIDs)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ProductIDs = productIDs
		}

		promotion, err := svc.Update(r.Context(), promotionID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promotion)
	}
}

// PromotionDelete removes a campaign.
func PromotionDelete(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promotionID, err := validators.ParsePathUUID(chi.URLParam(r, "promotionId"), "promotionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), promotionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
