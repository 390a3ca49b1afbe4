package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	// Minimum cost parameters keep the hashing fast in tests.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	repo := NewRepository(db)
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)
	return svc, repo
}

func adminInput() CreateInput {
	return CreateInput{
		CitizenID:  "079123456789",
		Name:       "Nguyen Van An",
		Email:      "an.nguyen@fremed.vn",
		Password:   "123456",
		Role:       enums.UserRoleAdmin,
		Department: "Ban Giam doc",
		Position:   "Giam doc",
		IsActive:   true,
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, adminInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.Equal(t, enums.UserRoleAdmin, dto.Role)

	stored, err := repo.FindByID(ctx, dto.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "123456", stored.PasswordHash)

	ok, err := security.VerifyPassword("123456", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUserDuplicateCitizenID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminInput())
	require.NoError(t, err)

	dup := adminInput()
	dup.Name = "Someone Else"
	dup.Email = "else@fremed.vn"
	_, err = svc.Create(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreateUserInvalidRole(t *testing.T) {
	svc, _ := newTestService(t)

	input := adminInput()
	input.Role = enums.UserRole("superuser")
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateUser(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, adminInput())
	require.NoError(t, err)

	role := enums.UserRoleManager
	inactive := false
	password := "new-secret"
	updated, err := svc.Update(ctx, dto.ID, UpdateInput{
		Role:     &role,
		IsActive: &inactive,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleManager, updated.Role)
	assert.False(t, updated.IsActive)

	stored, err := repo.FindByID(ctx, dto.ID)
	require.NoError(t, err)
	ok, err := security.VerifyPassword("new-secret", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateUserCitizenIDConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, adminInput())
	require.NoError(t, err)

	second := adminInput()
	second.CitizenID = "079987654321"
	second.Email = "binh.tran@fremed.vn"
	other, err := svc.Create(ctx, second)
	require.NoError(t, err)

	taken := first.CitizenID
	_, err = svc.Update(ctx, other.ID, UpdateInput{CitizenID: &taken})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, adminInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, dto.ID))

	_, err = svc.Get(ctx, dto.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListUsersOmitsPasswordHash(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminInput())
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "079123456789", list[0].CitizenID)
}
