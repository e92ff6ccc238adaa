package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T, monitorPings bool) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(monitorPings))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return &DB{DB: sqlDB}, mock
}

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "railres", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=railres sslmode=disable", cfg.DSN())
}

func TestRunMigrations(t *testing.T) {
	db, mock := newMockDB(t, false)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS booking_journal").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS booking_journal_username_idx").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.RunMigrations())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsStopsOnFailure(t *testing.T) {
	db, mock := newMockDB(t, false)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS booking_journal").WillReturnError(errors.New("permission denied"))

	err := db.RunMigrations()
	assert.ErrorContains(t, err, "migration 1 failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	db, mock := newMockDB(t, true)

	mock.ExpectPing()
	assert.Equal(t, "healthy", db.HealthCheck(context.Background()).Status)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	health := db.HealthCheck(context.Background())
	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, "connection refused", health.Error)
}
