package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fremed/fremed-backend/pkg/db/models"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestService(t *testing.T) Service {
	t.Helper()

	svc, err := NewService(NewRepository(newTestDB(t)))
	require.NoError(t, err)
	return svc
}

func mustCreateCategory(t *testing.T, svc Service, name string) *CategoryDTO {
	t.Helper()

	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		Name:     name,
		IsActive: true,
	})
	require.NoError(t, err)
	return category
}

func TestCreateAndGetProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Pain Relief")

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code:       "PAR-500",
		Name:       "Paracetamol 500mg",
		CategoryID: category.ID,
		Price:      15000,
		Stock:      1200,
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", got.Name)
	assert.Equal(t, 15000, got.Price)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Code:       "PAR-500",
		Name:       "Paracetamol 500mg",
		CategoryID: uuid.New(),
		Price:      15000,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateProductPartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Antibiotics")

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code:       "AMX-500",
		Name:       "Amoxicillin 500mg",
		CategoryID: category.ID,
		Price:      25000,
		Stock:      800,
		IsActive:   true,
	})
	require.NoError(t, err)

	newPrice := 27000
	inactive := false
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 27000, updated.Price)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Amoxicillin 500mg", updated.Name)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := newTestService(t)

	name := "renamed"
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Vitamins")

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code:       "VTC-100",
		Name:       "Vitamin C 1000mg",
		CategoryID: category.ID,
		Price:      35000,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.DeleteProduct(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListProductsFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	pain := mustCreateCategory(t, svc, "Pain Relief")
	vitamins := mustCreateCategory(t, svc, "Vitamins")

	seedProducts := []CreateProductInput{
		{Code: "PAR-500", Name: "Paracetamol 500mg", Description: "Fever reducer", CategoryID: pain.ID, Price: 15000, IsActive: true},
		{Code: "IBU-400", Name: "Ibuprofen 400mg", Description: "Anti-inflammatory", CategoryID: pain.ID, Price: 22000, IsActive: false},
		{Code: "VTC-100", Name: "Vitamin C 1000mg", Description: "Immune support", CategoryID: vitamins.ID, Price: 35000, IsActive: true},
	}
	for _, input := range seedProducts {
		_, err := svc.CreateProduct(ctx, input)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		filter    ProductFilter
		wantCodes []string
	}{
		{"no filter", ProductFilter{}, []string{"PAR-500", "IBU-400", "VTC-100"}},
		{"query matches name case-insensitive", ProductFilter{Query: "paracetamol"}, []string{"PAR-500"}},
		{"query matches description", ProductFilter{Query: "immune"}, []string{"VTC-100"}},
		{"query matches code", ProductFilter{Query: "ibu"}, []string{"IBU-400"}},
		{"category filter", ProductFilter{CategoryID: &pain.ID}, []string{"PAR-500", "IBU-400"}},
		{"active only", ProductFilter{ActiveOnly: true}, []string{"PAR-500", "VTC-100"}},
		{"category and active", ProductFilter{CategoryID: &pain.ID, ActiveOnly: true}, []string{"PAR-500"}},
		{"no match", ProductFilter{Query: "aspirin"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			products, err := svc.ListProducts(ctx, tc.filter)
			require.NoError(t, err)

			codes := make([]string, 0, len(products))
			for _, p := range products {
				codes = append(codes, p.Code)
			}
			assert.ElementsMatch(t, tc.wantCodes, codes)
		})
	}
}

func TestDeleteCategoryReferenced(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Pain Relief")

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		Code:       "PAR-500",
		Name:       "Paracetamol 500mg",
		CategoryID: category.ID,
		Price:      15000,
	})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, category.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	// Category must survive the rejected delete.
	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestDeleteCategoryEmpty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Empty")

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestUpdateCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Vitamins")

	name := "Vitamins & Supplements"
	updated, err := svc.UpdateCategory(ctx, category.ID, UpdateCategoryInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Vitamins & Supplements", updated.Name)
	assert.True(t, updated.IsActive)
}
