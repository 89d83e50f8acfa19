package provider

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectbrow/consent-api/internal/system/database"
)

func TestDBProviderLifecycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	InitDBProvider(&database.DB{DB: sqlx.NewDb(db, "sqlmock")}, "mysql")

	client, err := GetDBProvider().GetConsentDBClient()
	require.NoError(t, err)
	assert.Equal(t, "mysql", client.DatabaseType())

	// Init is once-only; a second call must not replace the instance.
	InitDBProvider(nil, "postgres")
	again, err := GetDBProvider().GetConsentDBClient()
	require.NoError(t, err)
	assert.Equal(t, "mysql", again.DatabaseType())

	require.NoError(t, GetDBProviderCloser().Close())

	_, err = GetDBProvider().GetConsentDBClient()
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
