package repository

import (
	"context"

	"railres/internal/database"
	"railres/internal/models"
)

// JournalRepository appends booking lifecycle rows to PostgreSQL. It is an
// audit trail only; in-memory state is never rebuilt from it.
type JournalRepository struct {
	db *database.DB
}

func NewJournalRepository(db *database.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Record(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO booking_journal (pnr, username, train_number, train_name, seat_class, action, amount, refund_tier, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		entry.PNR,
		entry.Username,
		entry.TrainNumber,
		entry.TrainName,
		entry.SeatClass,
		entry.Action,
		entry.Amount,
		entry.RefundTier,
		entry.OccurredAt,
	).Scan(&entry.ID)
}

func (r *JournalRepository) GetByUsername(ctx context.Context, username string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	query := `
		SELECT id, pnr, username, train_number, train_name, seat_class, action, amount, refund_tier, occurred_at
		FROM booking_journal
		WHERE username = $1
		ORDER BY occurred_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.JournalEntry
		err := rows.Scan(
			&entry.ID,
			&entry.PNR,
			&entry.Username,
			&entry.TrainNumber,
			&entry.TrainName,
			&entry.SeatClass,
			&entry.Action,
			&entry.Amount,
			&entry.RefundTier,
			&entry.OccurredAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
