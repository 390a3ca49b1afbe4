package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/internal/cart"
	"github.com/fremed/fremed-backend/internal/pricing"
	"github.com/fremed/fremed-backend/internal/promotions"
	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
)

// Service turns carts into orders and manages the order lifecycle.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	Update(ctx context.Context, orderID uuid.UUID, input UpdateInput) (*OrderDTO, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, filter OrderFilter) ([]OrderDTO, error)
	Export(ctx context.Context, orderID uuid.UUID) (string, error)
}

// CheckoutInput is everything needed to finalize the user's cart.
type CheckoutInput struct {
	UserID          uuid.UUID
	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	DeliveryOption  enums.DeliveryOption
	PromotionID     *uuid.UUID
	Notes           *string
	DeliveryDate    *time.Time
}

// UpdateInput holds the order metadata fields that stay mutable after
// checkout. Amounts and line items are frozen.
type UpdateInput struct {
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string
	Notes           *string
	DeliveryDate    *time.Time
}

type service struct {
	repo       *Repository
	cartRepo   *cart.Repository
	promotions promotions.Service
	calculator pricing.Calculator
	now        func() time.Time
}

// NewService constructs an orders service instance.
func NewService(repo *Repository, cartRepo *cart.Repository, promoSvc promotions.Service, calculator pricing.Calculator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if promoSvc == nil {
		return nil, fmt.Errorf("promotions service required")
	}
	return &service{
		repo:       repo,
		cartRepo:   cartRepo,
		promotions: promoSvc,
		calculator: calculator,
		now:        time.Now,
	}, nil
}

// Checkout validates the customer details, prices the cart, and creates the
// order in one transaction. The order number, amounts, and line items are
// frozen at this point; the cart is emptied on success.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*OrderDTO, error) {
	if err := validateCheckout(input); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, input.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	promotionEligible := false
	if input.PromotionID != nil {
		promotionEligible, err = s.promotions.Eligible(ctx, *input.PromotionID)
		if err != nil {
			return nil, err
		}
		if !promotionEligible {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion is not eligible")
		}
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	quote := s.calculator.Quote(pricing.Input{
		Lines:             lines,
		PromotionEligible: promotionEligible,
		Delivery:          input.DeliveryOption,
	})

	now := s.now()
	order := &models.Order{
		CustomerID:      input.CustomerID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		TotalAmount:     quote.Subtotal,
		DiscountAmount:  quote.Discount,
		DeliveryFee:     quote.DeliveryFee,
		FinalAmount:     quote.FinalTotal,
		DeliveryOption:  input.DeliveryOption,
		PromotionID:     input.PromotionID,
		Status:          enums.OrderStatusPending,
		Notes:           input.Notes,
		DeliveryDate:    input.DeliveryDate,
		CreatedBy:       input.UserID,
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.LineTotal(),
		})
	}

	// Number assignment, insert, and cart clearing commit or roll back
	// together so a failed checkout never burns a sequence slot.
	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txOrders := s.repo.WithTx(tx)
		txCart := s.cartRepo.WithTx(tx)

		count, err := txOrders.Count(ctx)
		if err != nil {
			return err
		}
		order.OrderNumber = formatOrderNumber(now, count+1)

		if _, err := txOrders.Create(ctx, order); err != nil {
			return err
		}
		return txCart.ClearCart(ctx, input.UserID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create order")
	}

	return toOrderDTO(order), nil
}

// UpdateStatus sets the order status. Transitions are unguarded: any valid
// status can replace any other, including moving backwards.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": status.String()})
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}

	order.Status = status
	if _, err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
	}
	return toOrderDTO(order), nil
}

// Update applies changes to the mutable order metadata.
func (s *service) Update(ctx context.Context, orderID uuid.UUID, input UpdateInput) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}

	if input.CustomerName != nil {
		order.CustomerName = *input.CustomerName
	}
	if input.CustomerPhone != nil {
		order.CustomerPhone = *input.CustomerPhone
	}
	if input.CustomerAddress != nil {
		order.CustomerAddress = *input.CustomerAddress
	}
	if input.Notes != nil {
		order.Notes = input.Notes
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = input.DeliveryDate
	}

	if _, err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
	}
	return toOrderDTO(order), nil
}

// Get loads a single order with its items.
func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return toOrderDTO(order), nil
}

// List returns orders matching the filter.
func (s *service) List(ctx context.Context, filter OrderFilter) ([]OrderDTO, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": filter.Status.String()})
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *toOrderDTO(&orders[i]))
	}
	return dtos, nil
}

// Export renders an order as a plain-text document.
func (s *service) Export(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return renderExport(order, s.now()), nil
}

// formatOrderNumber builds the human-facing order number from the wall-clock
// year and a global sequence, e.g. ORD-2026-007.
func formatOrderNumber(now time.Time, sequence int64) string {
	return fmt.Sprintf("ORD-%d-%03d", now.Year(), sequence)
}

func validateCheckout(input CheckoutInput) error {
	missing := []string{}
	if strings.TrimSpace(input.CustomerID) == "" {
		missing = append(missing, "customer_id")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		missing = append(missing, "customer_phone")
	}
	if strings.TrimSpace(input.CustomerAddress) == "" {
		missing = append(missing, "customer_address")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing customer details").
			WithDetails(map[string]any{"fields": missing})
	}
	if !input.DeliveryOption.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery option").
			WithDetails(map[string]any{"delivery_option": input.DeliveryOption.String()})
	}
	return nil
}
