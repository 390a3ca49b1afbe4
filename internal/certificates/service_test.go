package certificates

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
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	_, err := svc.Create(context.Background(), CreateInput{
		Title:             "GPP Certification",
		CertificateNumber: "GPP-2026-009",
		IssueDate:         now,
		ExpiryDate:        now.AddDate(-1, 0, 0),
		IssuingAuthority:  "So Y te TP.HCM",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDerivedStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	valid, err := svc.Create(ctx, CreateInput{
		Title:             "GPL Certification",
		CertificateNumber: "GPL-2024-001",
		IssueDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
		IssuingAuthority:  "Bo Y te",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CertificateStatusActive, valid.Status)

	expired, err := svc.Create(ctx, CreateInput{
		Title:             "Old GMP Certification",
		CertificateNumber: "GMP-2020-004",
		IssueDate:         time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		IssuingAuthority:  "Bo Y te",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CertificateStatusExpired, expired.Status)

	pending, err := svc.Create(ctx, CreateInput{
		Title:             "ISO 9001 Renewal",
		CertificateNumber: "ISO-2026-012",
		IssueDate:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        time.Date(2029, 2, 1, 0, 0, 0, 0, time.UTC),
		IssuingAuthority:  "QUACERT",
		Pending:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CertificateStatusPending, pending.Status)
}

func TestPendingOverridesExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	// Pending wins even when the window has lapsed.
	dto, err := svc.Create(ctx, CreateInput{
		Title:             "Lapsed but in review",
		CertificateNumber: "REV-2022-003",
		IssueDate:         time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IssuingAuthority:  "Bo Y te",
		Pending:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CertificateStatusPending, dto.Status)

	resolved := false
	updated, err := svc.Update(ctx, dto.ID, UpdateInput{Pending: &resolved})
	require.NoError(t, err)
	assert.Equal(t, enums.CertificateStatusExpired, updated.Status)
}

func TestListStatusFilter(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	seed := []CreateInput{
		{Title: "Active", CertificateNumber: "A-1", IssueDate: now.AddDate(-1, 0, 0), ExpiryDate: now.AddDate(1, 0, 0), IssuingAuthority: "Bo Y te"},
		{Title: "Expired", CertificateNumber: "E-1", IssueDate: now.AddDate(-3, 0, 0), ExpiryDate: now.AddDate(-1, 0, 0), IssuingAuthority: "Bo Y te"},
		{Title: "Pending", CertificateNumber: "P-1", IssueDate: now, ExpiryDate: now.AddDate(2, 0, 0), IssuingAuthority: "Bo Y te", Pending: true},
	}
	for _, input := range seed {
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active := enums.CertificateStatusActive
	actives, err := svc.List(ctx, &active)
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, "Active", actives[0].Title)

	bogus := enums.CertificateStatus("revoked")
	_, err = svc.List(ctx, &bogus)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestExport(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	productID := uuid.New()
	dto, err := svc.Create(ctx, CreateInput{
		Title:             "GPL Certification",
		CertificateNumber: "GPL-2024-001",
		IssueDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
		IssuingAuthority:  "Bo Y te",
		ProductIDs:        []uuid.UUID{productID},
	})
	require.NoError(t, err)

	doc, err := svc.Export(ctx, dto.ID)
	require.NoError(t, err)
	assert.Contains(t, doc, "GPL-2024-001")
	assert.Contains(t, doc, "GPL Certification")
	assert.Contains(t, doc, "Bo Y te")
	assert.Contains(t, doc, "15/01/2024")
	assert.Contains(t, doc, "15/01/2027")
	assert.Contains(t, doc, "active")
	assert.Contains(t, doc, productID.String())

	_, err = svc.Export(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteCertificate(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateInput{
		Title:             "Temp",
		CertificateNumber: "T-1",
		IssueDate:         now,
		ExpiryDate:        now.AddDate(1, 0, 0),
		IssuingAuthority:  "Bo Y te",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, dto.ID))

	_, err = svc.Get(ctx, dto.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
