package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fremed/fremed-backend/internal/cart"
	"github.com/fremed/fremed-backend/internal/pricing"
	"github.com/fremed/fremed-backend/internal/promotions"
	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
)

type orderFixture struct {
	db     *gorm.DB
	svc    *service
	cart   *cart.Repository
	userID uuid.UUID
	now    time.Time
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	promoSvc, err := promotions.NewService(promotions.NewRepository(db))
	require.NoError(t, err)

	calculator := pricing.NewCalculator(config.PricingConfig{
		StandardDeliveryFee:   30000,
		ExpressDeliveryFee:    50000,
		FreeDeliveryThreshold: 500000,
		PromotionPercent:      10,
	})

	cartRepo := cart.NewRepository(db)
	svc, err := NewService(NewRepository(db), cartRepo, promoSvc, calculator)
	require.NoError(t, err)

	now := time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)
	typed := svc.(*service)
	typed.now = func() time.Time { return now }

	return &orderFixture{
		db:     db,
		svc:    typed,
		cart:   cartRepo,
		userID: uuid.New(),
		now:    now,
	}
}

func (fx *orderFixture) addCartLine(t *testing.T, name string, quantity, unitPrice int) {
	t.Helper()

	item := &models.CartItem{
		UserID:      fx.userID,
		ProductID:   uuid.New(),
		ProductName: name,
		ProductCode: fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}
	require.NoError(t, fx.db.Create(item).Error)
}

func (fx *orderFixture) checkoutInput() CheckoutInput {
	return CheckoutInput{
		UserID:          fx.userID,
		CustomerID:      "KH-0042",
		CustomerName:    "Nha thuoc Minh Chau",
		CustomerPhone:   "0903123456",
		CustomerAddress: "12 Hai Ba Trung, Q1, TP.HCM",
		DeliveryOption:  enums.DeliveryOptionStandard,
	}
}

func TestCheckoutCreatesOrder(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	fx.addCartLine(t, "Paracetamol 500mg", 10, 15000)

	order, err := fx.svc.Checkout(ctx, fx.checkoutInput())
	require.NoError(t, err)

	assert.Equal(t, "ORD-2026-001", order.OrderNumber)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, 150000, order.TotalAmount)
	assert.Equal(t, 0, order.DiscountAmount)
	assert.Equal(t, 30000, order.DeliveryFee)
	assert.Equal(t, 180000, order.FinalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Paracetamol 500mg", order.Items[0].ProductName)
	assert.Equal(t, 150000, order.Items[0].TotalPrice)

	// Checkout empties the cart.
	remaining, err := fx.cart.ListItems(ctx, fx.userID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCheckoutSequentialOrderNumbers(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	for i, want := range []string{"ORD-2026-001", "ORD-2026-002", "ORD-2026-003"} {
		fx.addCartLine(t, fmt.Sprintf("Product %d", i), 1, 20000)
		order, err := fx.svc.Checkout(ctx, fx.checkoutInput())
		require.NoError(t, err)
		assert.Equal(t, want, order.OrderNumber)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	fx := newOrderFixture(t)

	_, err := fx.svc.Checkout(context.Background(), fx.checkoutInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCheckoutMissingCustomerDetails(t *testing.T) {
	fx := newOrderFixture(t)
	fx.addCartLine(t, "Paracetamol 500mg", 1, 15000)

	input := fx.checkoutInput()
	input.CustomerName = ""
	input.CustomerPhone = "  "

	_, err := fx.svc.Checkout(context.Background(), input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"customer_name", "customer_phone"}, details["fields"])
}

func TestCheckoutInvalidDeliveryOption(t *testing.T) {
	fx := newOrderFixture(t)
	fx.addCartLine(t, "Paracetamol 500mg", 1, 15000)

	input := fx.checkoutInput()
	input.DeliveryOption = enums.DeliveryOption("drone")

	_, err := fx.svc.Checkout(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCheckoutWithPromotion(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	fx.addCartLine(t, "Amoxicillin 500mg", 8, 25000)

	promo := &models.Promotion{
		Title:     "June campaign",
		StartDate: time.Now().AddDate(0, 0, -1),
		EndDate:   time.Now().AddDate(0, 0, 1),
		Region:    enums.PromotionRegionNationwide,
		IsActive:  true,
	}
	require.NoError(t, fx.db.Create(promo).Error)

	input := fx.checkoutInput()
	input.PromotionID = &promo.ID

	order, err := fx.svc.Checkout(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 200000, order.TotalAmount)
	assert.Equal(t, 20000, order.DiscountAmount)
	assert.Equal(t, 30000, order.DeliveryFee)
	assert.Equal(t, 210000, order.FinalAmount)
	require.NotNil(t, order.PromotionID)
	assert.Equal(t, promo.ID, *order.PromotionID)
}

func TestCheckoutIneligiblePromotion(t *testing.T) {
	fx := newOrderFixture(t)
	fx.addCartLine(t, "Amoxicillin 500mg", 1, 25000)

	expired := &models.Promotion{
		Title:     "Last year",
		StartDate: time.Now().AddDate(-1, 0, 0),
		EndDate:   time.Now().AddDate(0, -6, 0),
		Region:    enums.PromotionRegionNationwide,
		IsActive:  true,
	}
	require.NoError(t, fx.db.Create(expired).Error)

	input := fx.checkoutInput()
	input.PromotionID = &expired.ID

	_, err := fx.svc.Checkout(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	// Unknown promotions are rejected the same way.
	bogus := uuid.New()
	input.PromotionID = &bogus
	_, err = fx.svc.Checkout(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCheckoutFreeDeliveryAboveThreshold(t *testing.T) {
	fx := newOrderFixture(t)
	fx.addCartLine(t, "Vitamin C 1000mg", 20, 35000)

	order, err := fx.svc.Checkout(context.Background(), fx.checkoutInput())
	require.NoError(t, err)
	assert.Equal(t, 700000, order.TotalAmount)
	assert.Equal(t, 0, order.DeliveryFee)
}

func TestUpdateStatusUnguarded(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	fx.addCartLine(t, "Paracetamol 500mg", 1, 15000)

	order, err := fx.svc.Checkout(ctx, fx.checkoutInput())
	require.NoError(t, err)

	// Forward, backward, and into cancelled are all permitted.
	steps := []enums.OrderStatus{
		enums.OrderStatusDelivered,
		enums.OrderStatusPending,
		enums.OrderStatusCancelled,
	}
	for _, status := range steps {
		updated, err := fx.svc.UpdateStatus(ctx, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = fx.svc.UpdateStatus(ctx, order.ID, enums.OrderStatus("lost"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = fx.svc.UpdateStatus(ctx, uuid.New(), enums.OrderStatusShipped)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateOrderMetadata(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	fx.addCartLine(t, "Paracetamol 500mg", 2, 15000)

	order, err := fx.svc.Checkout(ctx, fx.checkoutInput())
	require.NoError(t, err)

	notes := "Giao gio hanh chinh"
	deliveryDate := fx.now.AddDate(0, 0, 3)
	updated, err := fx.svc.Update(ctx, order.ID, UpdateInput{
		Notes:        &notes,
		DeliveryDate: &deliveryDate,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
	require.NotNil(t, updated.DeliveryDate)
	assert.Equal(t, deliveryDate, updated.DeliveryDate.UTC())

	// Amounts stay frozen.
	assert.Equal(t, order.FinalAmount, updated.FinalAmount)
}

func TestListOrdersFilter(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	fx.addCartLine(t, "Paracetamol 500mg", 1, 15000)
	first, err := fx.svc.Checkout(ctx, fx.checkoutInput())
	require.NoError(t, err)

	fx.addCartLine(t, "Amoxicillin 500mg", 1, 25000)
	_, err = fx.svc.Checkout(ctx, fx.checkoutInput())
	require.NoError(t, err)

	_, err = fx.svc.UpdateStatus(ctx, first.ID, enums.OrderStatusShipped)
	require.NoError(t, err)

	all, err := fx.svc.List(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shipped := enums.OrderStatusShipped
	filtered, err := fx.svc.List(ctx, OrderFilter{Status: &shipped})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)

	otherUser := uuid.New()
	none, err := fx.svc.List(ctx, OrderFilter{CreatedBy: &otherUser})
	require.NoError(t, err)
	assert.Empty(t, none)

	byCustomer, err := fx.svc.List(ctx, OrderFilter{Customer: "minh chau"})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	byPhone, err := fx.svc.List(ctx, OrderFilter{Customer: "0903123"})
	require.NoError(t, err)
	assert.Len(t, byPhone, 2)

	noMatch, err := fx.svc.List(ctx, OrderFilter{Customer: "khong ton tai"})
	require.NoError(t, err)
	assert.Empty(t, noMatch)
}

func TestExportOrder(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	fx.addCartLine(t, "Paracetamol 500mg", 10, 15000)

	order, err := fx.svc.Checkout(ctx, fx.checkoutInput())
	require.NoError(t, err)

	doc, err := fx.svc.Export(ctx, order.ID)
	require.NoError(t, err)
	assert.Contains(t, doc, "ORD-2026-001")
	assert.Contains(t, doc, "Nha thuoc Minh Chau")
	assert.Contains(t, doc, "Paracetamol 500mg")
	assert.Contains(t, doc, "150.000d")
	assert.Contains(t, doc, "180.000d")

	_, err = fx.svc.Export(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "0d"},
		{999, "999d"},
		{15000, "15.000d"},
		{1250000, "1.250.000d"},
		{-30000, "-30.000d"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, formatVND(tc.amount))
	}
}
