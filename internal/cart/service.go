package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/internal/catalog"
	"github.com/fremed/fremed-backend/pkg/db/models"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
)

// Service manages per-user shopping carts.
type Service interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error)
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
}

type service struct {
	repo    *Repository
	catalog *catalog.Repository
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, catalogRepo *catalog.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, catalog: catalogRepo}, nil
}

// AddItem adds quantity of a product to the user's cart. If the product is
// already in the cart the existing line's quantity is incremented; otherwise a
// new line is created with the product's name, code, and price snapshotted.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.catalog.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available for ordering")
	}

	item, err := s.repo.FindItem(ctx, userID, productID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if _, err := s.repo.SaveItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line := &models.CartItem{
			UserID:      userID,
			ProductID:   productID,
			ProductName: product.Name,
			ProductCode: product.Code,
			UnitPrice:   product.Price,
			Quantity:    quantity,
		}
		if _, err := s.repo.CreateItem(ctx, line); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
	}

	return s.Get(ctx, userID)
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line from the cart.
func (s *service) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	item, err := s.repo.FindItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
	}

	item.Quantity = quantity
	if _, err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
	}
	return s.Get(ctx, userID)
}

// RemoveItem drops a product's line from the cart. Removing a product that is
// not in the cart is a no-op.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	if err := s.repo.DeleteItem(ctx, userID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
	}
	return s.Get(ctx, userID)
}

// Clear empties the user's cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
	}
	return nil
}

// Get returns the cart with per-line totals and the running subtotal.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
	}
	return toCartDTO(userID, items), nil
}
