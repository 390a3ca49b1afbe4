package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/pkg/db/models"
)

// ProductDTO is the API-facing product shape.
type ProductDTO struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	CategoryID       uuid.UUID `json:"category_id"`
	Price            int       `json:"price"`
	PricePerUnit     *int      `json:"price_per_unit,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	ActiveIngredient string    `json:"active_ingredient,omitempty"`
	Specification    string    `json:"specification,omitempty"`
	Stock            int       `json:"stock"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CategoryDTO is the API-facing category shape.
type CategoryDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	return &ProductDTO{
		ID:               product.ID,
		Code:             product.Code,
		Name:             product.Name,
		Description:      product.Description,
		CategoryID:       product.CategoryID,
		Price:            product.Price,
		PricePerUnit:     product.PricePerUnit,
		ImageURL:         product.ImageURL,
		ActiveIngredient: product.ActiveIngredient,
		Specification:    product.Specification,
		Stock:            product.Stock,
		IsActive:         product.IsActive,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

func toProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *toProductDTO(&products[i]))
	}
	return dtos
}

func toCategoryDTO(category *models.Category) *CategoryDTO {
	if category == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ParentID:    category.ParentID,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func toCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, *toCategoryDTO(&categories[i]))
	}
	return dtos
}
