package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrWriteFailed wraps a failed usage write. Writes are best-effort: the
// engine logs the failure and moves on, it never retries (a retry risks
// double-counting TimesShown).
var ErrWriteFailed = errors.New("ledger write failed")

// UsageRecord is the per-user exposure history for one question.
// Counters only ever increase.
type UsageRecord struct {
	UserID     string
	QuestionID string

	// TimesShown is how often the question was served to the user.
	TimesShown int

	// TimesCorrect is how often the user answered it correctly.
	// Always <= TimesShown.
	TimesCorrect int

	// LastShownAt is the most recent exposure. Zero until first shown.
	LastShownAt time.Time
}

// Accuracy returns TimesCorrect/TimesShown, or 0 for an unshown question.
func (r UsageRecord) Accuracy() float64 {
	if r.TimesShown == 0 {
		return 0
	}
	return float64(r.TimesCorrect) / float64(r.TimesShown)
}

// Seen reports whether the question has ever been shown to the user.
func (r UsageRecord) Seen() bool {
	return r.TimesShown > 0
}

// Ledger is the per-user exposure/correctness history store.
//
// A write failure only degrades the quality of future repetition
// avoidance; it must never affect the correctness of a running session.
type Ledger interface {
	// Stats returns all usage records for a user, keyed by question id.
	Stats(ctx context.Context, userID string) (map[string]UsageRecord, error)

	// RecordExposure bumps TimesShown (and TimesCorrect when wasCorrect)
	// and stamps LastShownAt. The record is created lazily on first
	// exposure. One call corresponds to one logical exposure event.
	RecordExposure(ctx context.Context, userID, questionID string, wasCorrect bool) error

	// Reset removes every record for the user ("start fresh").
	Reset(ctx context.Context, userID string) error
}
