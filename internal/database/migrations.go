package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createBookingJournalTable,
		createBookingJournalUsernameIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createBookingJournalTable = `
CREATE TABLE IF NOT EXISTS booking_journal (
    id BIGSERIAL PRIMARY KEY,
    pnr INTEGER NOT NULL,
    username VARCHAR(100) NOT NULL,
    train_number VARCHAR(20) NOT NULL,
    train_name VARCHAR(255) NOT NULL,
    seat_class VARCHAR(20) NOT NULL,
    action VARCHAR(20) NOT NULL,
    amount BIGINT NOT NULL DEFAULT 0,
    refund_tier VARCHAR(20),
    occurred_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (action IN ('BOOKED', 'CANCELLED')),
    CHECK (refund_tier IS NULL OR refund_tier IN ('full', 'partial', 'none'))
);`

const createBookingJournalUsernameIndex = `
CREATE INDEX IF NOT EXISTS booking_journal_username_idx
ON booking_journal (username, occurred_at);`
