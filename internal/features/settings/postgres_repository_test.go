package settings

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSettingsGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value, updated_at FROM app_config WHERE key = $1`)).
		WithArgs(WatermarkKey).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).AddRow(WatermarkKey, "1700000000", now))

	s, err := NewPostgresSettingsRepository(db).Get(context.Background(), WatermarkKey)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", s.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSettingsGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value, updated_at FROM app_config").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, err = NewPostgresSettingsRepository(db).Get(context.Background(), WatermarkKey)
	assert.True(t, errors.Is(err, ErrSettingNotFound))
}

func TestPostgresSettingsUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO app_config").
		WithArgs(WatermarkKey, "1700000000").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresSettingsRepository(db).Upsert(context.Background(), WatermarkKey, "1700000000"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
