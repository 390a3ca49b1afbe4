package promotions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
)

func newTestService(t *testing.T, now time.Time) *service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	typed := svc.(*service)
	typed.now = func() time.Time { return now }
	return typed
}

func TestCreateValidatesWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	_, err := svc.Create(context.Background(), CreateInput{
		Title:     "Backwards window",
		StartDate: now,
		EndDate:   now.Add(-24 * time.Hour),
		Region:    enums.PromotionRegionNationwide,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateValidatesRegion(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	_, err := svc.Create(context.Background(), CreateInput{
		Title:     "Bad region",
		StartDate: now,
		EndDate:   now.Add(24 * time.Hour),
		Region:    enums.PromotionRegion("mars"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestEligibility(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	create := func(title string, start, end time.Time, active bool) *PromotionDTO {
		dto, err := svc.Create(ctx, CreateInput{
			Title:     title,
			StartDate: start,
			EndDate:   end,
			Region:    enums.PromotionRegionNationwide,
			IsActive:  active,
		})
		require.NoError(t, err)
		return dto
	}

	current := create("Running", now.AddDate(0, 0, -5), now.AddDate(0, 0, 5), true)
	expired := create("Expired", now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), true)
	future := create("Upcoming", now.AddDate(0, 1, 0), now.AddDate(0, 2, 0), true)
	disabled := create("Disabled", now.AddDate(0, 0, -5), now.AddDate(0, 0, 5), false)

	tests := []struct {
		name string
		id   uuid.UUID
		want bool
	}{
		{"inside window and active", current.ID, true},
		{"window ended", expired.ID, false},
		{"window not started", future.ID, false},
		{"inactive", disabled.ID, false},
		{"unknown promotion", uuid.New(), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eligible, err := svc.Eligible(ctx, tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, eligible)
		})
	}

	eligibleOnly, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, eligibleOnly, 1)
	assert.Equal(t, "Running", eligibleOnly[0].Title)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	_ = disabled
}

func TestEligibilityWindowBoundsInclusive(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	svc := newTestService(t, start)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateInput{
		Title:     "June campaign",
		StartDate: start,
		EndDate:   end,
		Region:    enums.PromotionRegionNationwide,
		IsActive:  true,
	})
	require.NoError(t, err)

	eligible, err := svc.Eligible(ctx, dto.ID)
	require.NoError(t, err)
	assert.True(t, eligible, "start instant is inside the window")

	svc.now = func() time.Time { return end }
	eligible, err = svc.Eligible(ctx, dto.ID)
	require.NoError(t, err)
	assert.True(t, eligible, "end instant is inside the window")

	svc.now = func() time.Time { return end.Add(time.Second) }
	eligible, err = svc.Eligible(ctx, dto.ID)
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestUpdatePromotion(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateInput{
		Title:     "Summer sale",
		StartDate: now,
		EndDate:   now.AddDate(0, 1, 0),
		Region:    enums.PromotionRegionNorth,
		IsActive:  true,
	})
	require.NoError(t, err)

	inactive := false
	title := "Summer clearance"
	updated, err := svc.Update(ctx, dto.ID, UpdateInput{Title: &title, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Summer clearance", updated.Title)
	assert.False(t, updated.IsActive)
	assert.False(t, updated.Eligible)

	badEnd := now.AddDate(0, -1, 0)
	_, err = svc.Update(ctx, dto.ID, UpdateInput{EndDate: &badEnd})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeletePromotion(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateInput{
		Title:     "Temp",
		StartDate: now,
		EndDate:   now.AddDate(0, 1, 0),
		Region:    enums.PromotionRegionNationwide,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, dto.ID))

	_, err = svc.Get(ctx, dto.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.Delete(ctx, dto.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
