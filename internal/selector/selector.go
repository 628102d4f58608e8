// Package selector implements the question sampling strategies. All
// sampling is synchronous and CPU-bound over pre-fetched data; randomness
// comes from a single injected seeded source so every draw is reproducible
// under test.
package selector

import (
	"math/rand"
	"time"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/ledger"
)

// Mastery thresholds for the exclusion set: a question this practiced and
// this accurate is not worth re-serving in normal modes.
const (
	masteredMinShown    = 3
	masteredMinAccuracy = 0.9
)

// DefaultRecentWindow is how long after an exposure a question counts as
// recently seen.
const DefaultRecentWindow = 24 * time.Hour

// Selector draws question sets from a catalog snapshot.
type Selector struct {
	rng *rand.Rand
}

// New creates a Selector using the given random source.
func New(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// NewSeeded creates a Selector with a deterministic source.
func NewSeeded(seed int64) *Selector {
	return New(rand.New(rand.NewSource(seed)))
}

// BuildExcludeSet returns the ids that should not be re-served: questions
// shown within the recent window, and mastered questions (at least
// masteredMinShown exposures with accuracy >= masteredMinAccuracy).
func BuildExcludeSet(stats map[string]ledger.UsageRecord, now time.Time, recentWindow time.Duration) map[string]struct{} {
	if recentWindow <= 0 {
		recentWindow = DefaultRecentWindow
	}
	out := make(map[string]struct{})
	for id, rec := range stats {
		if !rec.Seen() {
			continue
		}
		if now.Sub(rec.LastShownAt) < recentWindow {
			out[id] = struct{}{}
			continue
		}
		if rec.TimesShown >= masteredMinShown && rec.Accuracy() >= masteredMinAccuracy {
			out[id] = struct{}{}
		}
	}
	return out
}

// sample draws n distinct elements uniformly via a partial Fisher-Yates
// shuffle. The input slice is reordered in place.
func (s *Selector) sample(pool []catalog.Question, n int) []catalog.Question {
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// dedupe drops questions whose id was already taken, preserving order.
func dedupe(qs []catalog.Question, taken map[string]struct{}) []catalog.Question {
	out := qs[:0]
	for _, q := range qs {
		if _, dup := taken[q.ID]; dup {
			continue
		}
		taken[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out
}
