package selector

import (
	"math"
	"sort"
	"time"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/ledger"
)

// Weight shape for learning-optimized selection. A never-shown question
// gets maxWeight outright; everything else starts at 1 and earns extra
// weight for missed answers and stale exposure.
const (
	maxWeight     = 10.0
	accuracyBias  = 6.0
	stalenessBias = 3.0
	stalenessCap  = 30 * 24 * time.Hour
)

// FocusAreas optionally restricts the learning-optimized candidate pool.
// Empty slices impose no restriction.
type FocusAreas struct {
	Categories   []string
	Difficulties []catalog.Difficulty
}

func (f FocusAreas) matches(q catalog.Question) bool {
	if len(f.Categories) > 0 {
		ok := false
		for _, c := range f.Categories {
			if q.Category == c {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Difficulties) > 0 {
		ok := false
		for _, d := range f.Difficulties {
			if q.Difficulty == d {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// learningWeight scores a candidate for re-practice. Lower historical
// accuracy and staler exposure raise the weight; unseen questions get the
// maximum.
func learningWeight(rec ledger.UsageRecord, now time.Time) float64 {
	if !rec.Seen() {
		return maxWeight
	}
	staleness := now.Sub(rec.LastShownAt)
	if staleness < 0 {
		staleness = 0
	}
	if staleness > stalenessCap {
		staleness = stalenessCap
	}
	w := 1.0
	w += accuracyBias * (1.0 - rec.Accuracy())
	w += stalenessBias * (float64(staleness) / float64(stalenessCap))
	return w
}

// WeightedLearningOptimized samples count questions without replacement,
// biased toward under-practiced and previously-missed material, using
// Efraimidis-Spirakis weighted reservoir sampling (A-Res): each candidate
// gets key u^(1/w) from the seeded source and the top count keys win, so
// ties break by the random source, never by pool order.
func (s *Selector) WeightedLearningOptimized(
	pool []catalog.Question,
	stats map[string]ledger.UsageRecord,
	focus FocusAreas,
	count int,
	now time.Time,
) []catalog.Question {
	if count <= 0 {
		return nil
	}

	type keyed struct {
		q   catalog.Question
		key float64
	}
	var candidates []keyed
	taken := make(map[string]struct{}, len(pool))
	for _, q := range pool {
		if _, dup := taken[q.ID]; dup {
			continue
		}
		taken[q.ID] = struct{}{}
		if !focus.matches(q) {
			continue
		}
		rec := stats[q.ID]
		u := s.rng.Float64()
		var key float64
		if !rec.Seen() {
			// Maximum weight: an unseen question always outranks any
			// seen one (seen keys are < 1), with the random component
			// ordering unseen questions among themselves.
			key = 1 + u
		} else {
			key = math.Pow(u, 1.0/learningWeight(rec, now))
		}
		candidates = append(candidates, keyed{q: q, key: key})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].key > candidates[j].key
	})

	if count > len(candidates) {
		count = len(candidates)
	}
	out := make([]catalog.Question, 0, count)
	for _, c := range candidates[:count] {
		out = append(out, c.q)
	}
	return out
}
