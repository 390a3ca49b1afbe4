package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/api/responses"
	"github.com/fremed/fremed-backend/api/validators"
	"github.com/fremed/fremed-backend/internal/catalog"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=128"`
	Description string  `json:"description" validate:"max=512"`
	ParentID    *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=128"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=512"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CategoryList serves every category.
func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CategoryCreate adds a category.
func CategoryCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var parentID *uuid.UUID
		if payload.ParentID != nil {
			parsed, err := uuid.Parse(*payload.ParentID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent id"))
				return
			}
			parentID = &parsed
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		category, err := svc.CreateCategory(r.Context(), catalog.CreateCategoryInput{
			Name:        validators.SanitizeString(payload.Name, 128),
			Description: validators.SanitizeString(payload.Description, 512),
			ParentID:    parentID,
			IsActive:    isActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// CategoryUpdate applies a partial update to a category.
func CategoryUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParsePathUUID(chi.URLParam(r, "categoryId"), "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(r.Context(), categoryID, catalog.UpdateCategoryInput{
			Name:        payload.Name,
			Description: payload.Description,
			IsActive:    payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CategoryDelete removes a category. Categories still referenced by products
// cannot be deleted.
func CategoryDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParsePathUUID(chi.URLParam(r, "categoryId"), "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
