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

type createProductRequest struct {
	Code             string `json:"code" validate:"required,min=2,max=32"`
	Name             string `json:"name" validate:"required,min=2,max=128"`
	Description      string `json:"description" validate:"max=1024"`
	CategoryID       string `json:"category_id" validate:"required,uuid"`
	Price            int    `json:"price" validate:"gte=0"`
	PricePerUnit     *int   `json:"price_per_unit,omitempty" validate:"omitempty,gte=0"`
	ImageURL         string `json:"image_url" validate:"omitempty,max=512"`
	ActiveIngredient string `json:"active_ingredient" validate:"max=256"`
	Specification    string `json:"specification" validate:"max=256"`
	Stock            int    `json:"stock" validate:"gte=0"`
	IsActive         *bool  `json:"is_active,omitempty"`
}

type updateProductRequest struct {
	Code             *string `json:"code,omitempty" validate:"omitempty,min=2,max=32"`
	Name             *string `json:"name,omitempty" validate:"omitempty,min=2,max=128"`
	Description      *string `json:"description,omitempty" validate:"omitempty,max=1024"`
	CategoryID       *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Price            *int    `json:"price,omitempty" validate:"omitempty,gte=0"`
	PricePerUnit     *int    `json:"price_per_unit,omitempty" validate:"omitempty,gte=0"`
	ImageURL         *string `json:"image_url,omitempty" validate:"omitempty,max=512"`
	ActiveIngredient *string `json:"active_ingredient,omitempty" validate:"omitempty,max=256"`
	Specification    *string `json:"specification,omitempty" validate:"omitempty,max=256"`
	Stock            *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

// ProductList serves the catalog with optional query, category, and active
// filters.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ProductFilter{
			Query:      validators.SanitizeString(r.URL.Query().Get("q"), 128),
			CategoryID: categoryID,
			ActiveOnly: activeOnly,
		}

		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductDetail serves one product.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductCreate adds a product to the catalog.
func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryID, err := uuid.Parse(payload.CategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Code:             validators.SanitizeString(payload.Code, 32),
			Name:             validators.SanitizeString(payload.Name, 128),
			Description:      validators.SanitizeString(payload.Description, 1024),
			CategoryID:       categoryID,
			Price:            payload.Price,
			PricePerUnit:     payload.PricePerUnit,
			ImageURL:         validators.SanitizeString(payload.ImageURL, 512),
			ActiveIngredient: validators.SanitizeString(payload.ActiveIngredient, 256),
			Specification:    validators.SanitizeString(payload.Specification, 256),
			Stock:            payload.Stock,
			IsActive:         isActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductUpdate applies a partial update to a product.
func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			Code:             payload.Code,
			Name:             payload.Name,
			Description:      payload.Description,
			Price:            payload.Price,
			PricePerUnit:     payload.PricePerUnit,
			ImageURL:         payload.ImageURL,
			ActiveIngredient: payload.ActiveIngredient,
			Specification:    payload.Specification,
			Stock:            payload.Stock,
			IsActive:         payload.IsActive,
		}
		if payload.CategoryID != nil {
			categoryID, err := uuid.Parse(*payload.CategoryID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
				return
			}
			input.CategoryID = &categoryID
		}

		product, err := svc.UpdateProduct(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a product from the catalog.
func ProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
