package ledger

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-memory reference Ledger. It is the behavioral model the
// SQLite implementation is tested against, and the default for tests.
type Memory struct {
	mu      sync.RWMutex
	records map[string]map[string]UsageRecord // userID -> questionID -> record
	now     func() time.Time
}

// NewMemory creates an empty in-memory ledger. now may be nil, defaulting
// to time.Now.
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		records: make(map[string]map[string]UsageRecord),
		now:     now,
	}
}

// Stats returns a copy of the user's records keyed by question id.
func (m *Memory) Stats(_ context.Context, userID string) (map[string]UsageRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]UsageRecord, len(m.records[userID]))
	for qid, rec := range m.records[userID] {
		out[qid] = rec
	}
	return out, nil
}

// RecordExposure applies one exposure event. Counters never decrease.
func (m *Memory) RecordExposure(_ context.Context, userID, questionID string, wasCorrect bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byQuestion := m.records[userID]
	if byQuestion == nil {
		byQuestion = make(map[string]UsageRecord)
		m.records[userID] = byQuestion
	}

	rec, ok := byQuestion[questionID]
	if !ok {
		rec = UsageRecord{UserID: userID, QuestionID: questionID}
	}
	rec.TimesShown++
	if wasCorrect {
		rec.TimesCorrect++
	}
	rec.LastShownAt = m.now()
	byQuestion[questionID] = rec
	return nil
}

// Reset drops every record for the user.
func (m *Memory) Reset(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, userID)
	return nil
}
