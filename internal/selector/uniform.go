package selector

import (
	"sort"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/ledger"
)

// UniformRandomExcluding draws count distinct questions uniformly from
// pool minus the excluded ids. When the remaining pool runs short, it
// backfills from the excluded questions ordered by least recently shown
// (never-shown first), so exhaustion re-serves the stalest material and
// never the freshest. The call never fails: a short catalog just returns
// fewer questions.
func (s *Selector) UniformRandomExcluding(
	pool []catalog.Question,
	exclude map[string]struct{},
	stats map[string]ledger.UsageRecord,
	count int,
) []catalog.Question {
	if count <= 0 {
		return nil
	}

	eligible := make([]catalog.Question, 0, len(pool))
	var excluded []catalog.Question
	seen := make(map[string]struct{}, len(pool))
	for _, q := range pool {
		if _, dup := seen[q.ID]; dup {
			continue
		}
		seen[q.ID] = struct{}{}
		if _, skip := exclude[q.ID]; skip {
			excluded = append(excluded, q)
		} else {
			eligible = append(eligible, q)
		}
	}

	picked := s.sample(eligible, count)
	out := append([]catalog.Question(nil), picked...)
	if len(out) >= count {
		return out
	}

	// Exhaustion policy: backfill oldest-exposure-first. Unshown records
	// sort as oldest. Ties keep id order for determinism.
	sort.SliceStable(excluded, func(i, j int) bool {
		ti := stats[excluded[i].ID].LastShownAt
		tj := stats[excluded[j].ID].LastShownAt
		if ti.Equal(tj) {
			return excluded[i].ID < excluded[j].ID
		}
		return ti.Before(tj)
	})
	for _, q := range excluded {
		if len(out) >= count {
			break
		}
		out = append(out, q)
	}
	return out
}
