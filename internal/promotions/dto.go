package promotions

import (
	"time"

	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
)

// PromotionDTO is the API-facing promotion shape. Eligible is evaluated at
// read time against the service clock.
type PromotionDTO struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	ImageURL    string                `json:"image_url,omitempty"`
	StartDate   time.Time             `json:"start_date"`
	EndDate     time.Time             `json:"end_date"`
	Region      enums.PromotionRegion `json:"region"`
	ProductIDs  []uuid.UUID           `json:"product_ids"`
	IsActive    bool                  `json:"is_active"`
	Eligible    bool                  `json:"eligible"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func (s *service) toDTO(promotion *models.Promotion) *PromotionDTO {
	if promotion == nil {
		return nil
	}
	return &PromotionDTO{
		ID:          promotion.ID,
		Title:       promotion.Title,
		Description: promotion.Description,
		ImageURL:    promotion.ImageURL,
		StartDate:   promotion.StartDate,
		EndDate:     promotion.EndDate,
		Region:      promotion.Region,
		ProductIDs:  promotion.ProductIDs,
		IsActive:    promotion.IsActive,
		Eligible:    promotion.EligibleAt(s.now()),
		CreatedAt:   promotion.CreatedAt,
		UpdatedAt:   promotion.UpdatedAt,
	}
}
