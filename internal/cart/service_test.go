package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fremed/fremed-backend/internal/catalog"
	"github.com/fremed/fremed-backend/pkg/db/models"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
)

type cartFixture struct {
	db          *gorm.DB
	svc         Service
	paracetamol *models.Product
	amoxicillin *models.Product
	inactive    *models.Product
	userID      uuid.UUID
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	category := &models.Category{Name: "Pain Relief", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	paracetamol := &models.Product{
		Code: "PAR-500", Name: "Paracetamol 500mg",
		CategoryID: category.ID, Price: 15000, Stock: 1200, IsActive: true,
	}
	amoxicillin := &models.Product{
		Code: "AMX-500", Name: "Amoxicillin 500mg",
		CategoryID: category.ID, Price: 25000, Stock: 800, IsActive: true,
	}
	inactive := &models.Product{
		Code: "OLD-001", Name: "Discontinued",
		CategoryID: category.ID, Price: 9000, IsActive: false,
	}
	for _, p := range []*models.Product{paracetamol, amoxicillin, inactive} {
		require.NoError(t, db.Create(p).Error)
	}

	svc, err := NewService(NewRepository(db), catalog.NewRepository(db))
	require.NoError(t, err)

	return &cartFixture{
		db:          db,
		svc:         svc,
		paracetamol: paracetamol,
		amoxicillin: amoxicillin,
		inactive:    inactive,
		userID:      uuid.New(),
	}
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	dto, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 3)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)

	line := dto.Items[0]
	assert.Equal(t, "Paracetamol 500mg", line.ProductName)
	assert.Equal(t, "PAR-500", line.ProductCode)
	assert.Equal(t, 15000, line.UnitPrice)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 45000, line.LineTotal)
	assert.Equal(t, 45000, dto.Subtotal)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	_, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 2)
	require.NoError(t, err)

	dto, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 5)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 7, dto.Items[0].Quantity)
	assert.Equal(t, 7, dto.ItemCount)
}

func TestAddItemValidation(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	_, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 0)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = fx.svc.AddItem(ctx, fx.userID, uuid.New(), 1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = fx.svc.AddItem(ctx, fx.userID, fx.inactive.ID, 1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSetQuantity(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	_, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 2)
	require.NoError(t, err)

	dto, err := fx.svc.SetQuantity(ctx, fx.userID, fx.paracetamol.ID, 10)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 10, dto.Items[0].Quantity)
	assert.Equal(t, 150000, dto.Subtotal)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	_, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 2)
	require.NoError(t, err)

	dto, err := fx.svc.SetQuantity(ctx, fx.userID, fx.paracetamol.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
	assert.Equal(t, 0, dto.Subtotal)
}

func TestSetQuantityMissingLine(t *testing.T) {
	fx := newCartFixture(t)

	_, err := fx.svc.SetQuantity(context.Background(), fx.userID, fx.paracetamol.ID, 3)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestRemoveItem(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	_, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 2)
	require.NoError(t, err)
	_, err = fx.svc.AddItem(ctx, fx.userID, fx.amoxicillin.ID, 1)
	require.NoError(t, err)

	dto, err := fx.svc.RemoveItem(ctx, fx.userID, fx.paracetamol.ID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, fx.amoxicillin.ID, dto.Items[0].ProductID)

	// Removing an absent product is a no-op.
	dto, err = fx.svc.RemoveItem(ctx, fx.userID, fx.paracetamol.ID)
	require.NoError(t, err)
	assert.Len(t, dto.Items, 1)
}

func TestClearCart(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	_, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 2)
	require.NoError(t, err)
	_, err = fx.svc.AddItem(ctx, fx.userID, fx.amoxicillin.ID, 4)
	require.NoError(t, err)

	require.NoError(t, fx.svc.Clear(ctx, fx.userID))

	dto, err := fx.svc.Get(ctx, fx.userID)
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
	assert.Equal(t, 0, dto.ItemCount)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()
	otherUser := uuid.New()

	_, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 2)
	require.NoError(t, err)
	_, err = fx.svc.AddItem(ctx, otherUser, fx.amoxicillin.ID, 1)
	require.NoError(t, err)

	mine, err := fx.svc.Get(ctx, fx.userID)
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, fx.paracetamol.ID, mine.Items[0].ProductID)

	theirs, err := fx.svc.Get(ctx, otherUser)
	require.NoError(t, err)
	require.Len(t, theirs.Items, 1)
	assert.Equal(t, fx.amoxicillin.ID, theirs.Items[0].ProductID)
}

func TestSnapshotSurvivesPriceChange(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	_, err := fx.svc.AddItem(ctx, fx.userID, fx.paracetamol.ID, 2)
	require.NoError(t, err)

	// Catalog price changes after the line was added.
	err = fx.db.Model(&models.Product{}).
		Where("id = ?", fx.paracetamol.ID).
		Update("price", 99000).Error
	require.NoError(t, err)

	dto, err := fx.svc.Get(ctx, fx.userID)
	require.NoError(t, err)
	assert.Equal(t, 15000, dto.Items[0].UnitPrice)
}
