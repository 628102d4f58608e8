package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable is returned when the question source cannot be reached.
// An unreachable source must never be reported as an empty catalog: the
// caller decides whether to fall back to the embedded set.
var ErrUnavailable = errors.New("catalog unavailable")

// Source provides read access to the question catalog.
type Source interface {
	// Query returns a snapshot of all questions matching the filter.
	// The returned slice is owned by the caller; later mutations of the
	// source are never reflected in it. An unreachable source returns
	// an error wrapping ErrUnavailable, never a silent empty result.
	Query(ctx context.Context, f Filter) ([]Question, error)
}

// StaticSource serves questions from an in-memory slice. It backs the
// embedded fallback set and keeps tests independent of the database.
type StaticSource struct {
	mu        sync.RWMutex
	questions []Question
}

// NewStaticSource creates a source over the given questions.
// Structurally invalid questions are dropped.
func NewStaticSource(questions []Question) *StaticSource {
	s := &StaticSource{}
	for _, q := range questions {
		if q.Valid() {
			s.questions = append(s.questions, q.clone())
		}
	}
	return s
}

// Query returns a filtered copy of the backing set.
func (s *StaticSource) Query(_ context.Context, f Filter) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		if f.Matches(q) {
			out = append(out, q.clone())
		}
	}
	return out, nil
}

// Replace swaps the backing set. Snapshots handed out earlier are unaffected.
func (s *StaticSource) Replace(questions []Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = s.questions[:0]
	for _, q := range questions {
		if q.Valid() {
			s.questions = append(s.questions, q.clone())
		}
	}
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, f Filter) ([]Question, error)

func (fn SourceFunc) Query(ctx context.Context, f Filter) ([]Question, error) {
	qs, err := fn(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	return qs, nil
}
