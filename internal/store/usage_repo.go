package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/veritas-labs/versewise/internal/ledger"
)

// UsageRepo is the SQLite-backed ledger.Ledger. Writes are single-row
// UPSERTs keyed by (user_id, question_id); counters only ever increase.
type UsageRepo struct {
	db  *sql.DB
	now func() time.Time
}

// Usage returns the usage-record repository.
func (s *Store) Usage() *UsageRepo {
	return &UsageRepo{db: s.db, now: time.Now}
}

// Stats returns all usage records for the user, keyed by question id.
func (r *UsageRepo) Stats(ctx context.Context, userID string) (map[string]ledger.UsageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id, times_shown, times_correct, last_shown_at
		 FROM usage_records WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query usage records: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ledger.UsageRecord)
	for rows.Next() {
		rec := ledger.UsageRecord{UserID: userID}
		var lastShown sql.NullTime
		if err := rows.Scan(&rec.QuestionID, &rec.TimesShown, &rec.TimesCorrect, &lastShown); err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		if lastShown.Valid {
			rec.LastShownAt = lastShown.Time
		}
		out[rec.QuestionID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query usage records: %w", err)
	}
	return out, nil
}

// RecordExposure applies one exposure event. Failures wrap
// ledger.ErrWriteFailed so callers can treat them as droppable.
func (r *UsageRepo) RecordExposure(ctx context.Context, userID, questionID string, wasCorrect bool) error {
	correct := 0
	if wasCorrect {
		correct = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usage_records (user_id, question_id, times_shown, times_correct, last_shown_at)
		 VALUES (?, ?, 1, ?, ?)
		 ON CONFLICT(user_id, question_id) DO UPDATE SET
			times_shown = times_shown + 1,
			times_correct = times_correct + excluded.times_correct,
			last_shown_at = excluded.last_shown_at`,
		userID, questionID, correct, r.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrWriteFailed, err)
	}
	return nil
}

// Reset removes every record for the user.
func (r *UsageRepo) Reset(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM usage_records WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("reset usage records: %w", err)
	}
	return nil
}
