package promotions

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

// Service manages promotion campaigns.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*PromotionDTO, error)
	Update(ctx context.Context, promotionID uuid.UUID, input UpdateInput) (*PromotionDTO, error)
	Delete(ctx context.Context, promotionID uuid.UUID) error
	Get(ctx context.Context, promotionID uuid.UUID) (*PromotionDTO, error)
	List(ctx context.Context, eligibleOnly bool) ([]PromotionDTO, error)

	// Eligible reports whether the promotion can be applied right now. A
	// missing promotion is simply not eligible.
	Eligible(ctx context.Context, promotionID uuid.UUID) (bool, error)
}

// CreateInput holds the validated payload to create a promotion.
type CreateInput struct {
	Title       string
	Description string
	ImageURL    string
	StartDate   time.Time
	EndDate     time.Time
	Region      enums.PromotionRegion
	ProductIDs  []uuid.UUID
	IsActive    bool
	CreatedBy   uuid.UUID
}

// UpdateInput holds optional mutation values for a promotion.
type UpdateInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	StartDate   *time.Time
	EndDate     *time.Time
	Region      *enums.PromotionRegion
	ProductIDs  []uuid.UUID
	IsActive    *bool
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a promotions service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promotions repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Create validates the campaign window and inserts the promotion.
func (s *service) Create(ctx context.Context, input CreateInput) (*PromotionDTO, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date cannot precede start date")
	}
	if !input.Region.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown promotion region").
			WithDetails(map[string]any{"region": input.Region.String()})
	}

	promotion := &models.Promotion{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Region:      input.Region,
		ProductIDs:  input.ProductIDs,
		IsActive:    input.IsActive,
		CreatedBy:   input.CreatedBy,
	}

	created, err := s.repo.Create(ctx, promotion)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert promotion")
	}
	return s.toDTO(created), nil
}

// Update applies the provided partial changes to a promotion.
func (s *service) Update(ctx context.Context, promotionID uuid.UUID, input UpdateInput) (*PromotionDTO, error) {
	promotion, err := s.repo.FindByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load promotion")
	}

	if input.Title != nil {
		promotion.Title = *input.Title
	}
	if input.Description != nil {
		promotion.Description = *input.Description
	}
	if input.ImageURL != nil {
		promotion.ImageURL = *input.ImageURL
	}
	if input.StartDate != nil {
		promotion.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		promotion.EndDate = *input.EndDate
	}
	if promotion.EndDate.Before(promotion.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date cannot precede start date")
	}
	if input.Region != nil {
		if !input.Region.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown promotion region").
				WithDetails(map[string]any{"region": input.Region.String()})
		}
		promotion.Region = *input.Region
	}
	if input.ProductIDs != nil {
		promotion.ProductIDs = input.ProductIDs
	}
	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}

	saved, err := s.repo.Save(ctx, promotion)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update promotion")
	}
	return s.toDTO(saved), nil
}

// Delete removes a promotion.
func (s *service) Delete(ctx context.Context, promotionID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, promotionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load promotion")
	}
	if err := s.repo.Delete(ctx, promotionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete promotion")
	}
	return nil
}

// Get loads a single promotion.
func (s *service) Get(ctx context.Context, promotionID uuid.UUID) (*PromotionDTO, error) {
	promotion, err := s.repo.FindByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load promotion")
	}
	return s.toDTO(promotion), nil
}

// List returns promotions, optionally restricted to currently eligible ones.
func (s *service) List(ctx context.Context, eligibleOnly bool) ([]PromotionDTO, error) {
	promotions, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list promotions")
	}

	now := s.now()
	dtos := make([]PromotionDTO, 0, len(promotions))
	for i := range promotions {
		if eligibleOnly && !promotions[i].EligibleAt(now) {
			continue
		}
		dtos = append(dtos, *s.toDTO(&promotions[i]))
	}
	return dtos, nil
}

// Eligible checks a promotion against the current clock.
func (s *service) Eligible(ctx context.Context, promotionID uuid.UUID) (bool, error) {
	promotion, err := s.repo.FindByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load promotion")
	}
	return promotion.EligibleAt(s.now()), nil
}
