package verification

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectbrow/consent-api/internal/system/database"
	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
	"github.com/perfectbrow/consent-api/internal/verification/model"
)

func newMockStore(t *testing.T) (interfaces.SubmissionStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	client := provider.NewDBClient(&database.DB{DB: sqlxDB}, "mysql")
	return newSubmissionStore(client), mock
}

func TestStoreGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("maps all columns", func(t *testing.T) {
		store, mock := newMockStore(t)

		rows := sqlmock.NewRows([]string{
			"SUBMISSION_ID", "FORM_ID", "FIRST_NAME", "LAST_NAME", "PHONE", "EMAIL",
			"VERIFICATION_CODE", "CODE_EXPIRES_AT", "VERIFICATION_STATUS", "ATTEMPTS",
			"LAST_CODE_SENT_AT", "RESEND_AVAILABLE_AT", "RESEND_COUNT",
			"ORIGIN_ADDRESS", "USER_AGENT", "CREATED_AT", "VERIFIED_AT", "CUSTOMER_ID",
		}).AddRow(
			"sub-1", "form-1", "Jane", "Doe", "5551234567", "jane@example.com",
			"482193", int64(1770000000000), "pending", 2,
			int64(1769999400000), int64(1769999460000), 1,
			"203.0.113.9", "Mozilla/5.0", int64(1769999400000), nil, nil,
		)
		mock.ExpectQuery("SELECT .+ FROM CONSENT_SUBMISSION WHERE SUBMISSION_ID").
			WithArgs("sub-1").WillReturnRows(rows)

		sub, err := store.GetByID(ctx, "sub-1")

		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, "sub-1", sub.SubmissionID)
		assert.Equal(t, model.StatusPending, sub.Status)
		assert.Equal(t, 2, sub.Attempts)
		assert.Equal(t, int64(1770000000000), sub.CodeExpiresAt)
		assert.Nil(t, sub.VerifiedAt)
		assert.Nil(t, sub.CustomerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row returns nil", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT .+ FROM CONSENT_SUBMISSION WHERE SUBMISSION_ID").
			WithArgs("missing").WillReturnRows(sqlmock.NewRows([]string{"SUBMISSION_ID"}))

		sub, err := store.GetByID(ctx, "missing")

		require.NoError(t, err)
		assert.Nil(t, sub)
	})
}

func TestStoreCountByOriginSince(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) as count FROM CONSENT_SUBMISSION").
		WithArgs("203.0.113.9", int64(1769995800000)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := store.CountByOriginSince(ctx, "203.0.113.9", 1769995800000)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReplaceCode(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE CONSENT_SUBMISSION SET VERIFICATION_CODE").
		WithArgs("913305", int64(1770000600000), int64(1770000000000), int64(1770000060000), 2, "sub-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.ReplaceCode(ctx, "sub-1", "913305", 1770000600000, 1770000000000, 1770000060000, 2)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreMarkVerified(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE CONSENT_SUBMISSION SET VERIFICATION_STATUS = 'verified'").
		WithArgs(1, int64(1770000000000), "sub-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.MarkVerified(ctx, "sub-1", 1, 1770000000000)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
