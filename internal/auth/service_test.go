package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fremed/fremed-backend/internal/users"
	pkgauth "github.com/fremed/fremed-backend/pkg/auth"
	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/security"
)

type fakeSessions struct {
	saved   map[string]string
	revoked []string
}

func (f *fakeSessions) Save(_ context.Context, accessID, record string) error {
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	f.saved[accessID] = record
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "fremed",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 120,
	}
}

func newAuthFixture(t *testing.T) (*service, *fakeSessions, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1,
		ArgonSaltLen: 8, ArgonKeyLen: 16,
	}
	hash, err := security.HashPassword("123456", passwordCfg)
	require.NoError(t, err)

	user := &models.User{
		CitizenID:    "079123456789",
		Name:         "Nguyen Van An",
		Email:        "an.nguyen@fremed.vn",
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)

	sessions := &fakeSessions{}
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := &service{
		repo:     users.NewRepository(db),
		sessions: sessions,
		jwtCfg:   testJWTConfig(),
		now:      func() time.Time { return now },
		newJTI:   func() string { return "jti-fixed" },
	}
	return svc, sessions, user
}

func TestLoginSuccess(t *testing.T) {
	svc, sessions, user := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "079123456789", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.CitizenID, result.User.CitizenID)
	require.NotNil(t, result.User.LastLoginAt)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleAdmin, claims.Role)
	assert.Equal(t, "jti-fixed", claims.ID)

	record, ok := sessions.saved["jti-fixed"]
	require.True(t, ok)
	assert.Contains(t, record, user.CitizenID)
	assert.Contains(t, record, "admin")
}

func TestLoginWrongPassword(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "079123456789", "wrong")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
	assert.Empty(t, sessions.saved)
}

func TestLoginUnknownCitizenID(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "000000000000", "123456")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	user.IsActive = false
	_, err := svc.repo.Save(ctx, user)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "079123456789", "123456")
	require.Error(t, err)
	// Disabled accounts are indistinguishable from bad credentials.
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogout(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)

	require.NoError(t, svc.Logout(context.Background(), "jti-fixed"))
	assert.Equal(t, []string{"jti-fixed"}, sessions.revoked)
}
