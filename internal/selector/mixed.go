package selector

import (
	"math"
	"sort"

	"github.com/veritas-labs/versewise/internal/catalog"
)

// BalancedMixed draws count questions spread across categories. quota maps
// category to its desired proportion of the draw; when nil or empty, each
// category's quota is its share of the pool. Exhausted partitions are
// topped up from whichever partition still has the most questions left.
func (s *Selector) BalancedMixed(
	pool []catalog.Question,
	count int,
	quota map[string]float64,
) []catalog.Question {
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	// Partition by category, dropping duplicate ids.
	taken := make(map[string]struct{}, len(pool))
	partitions := make(map[string][]catalog.Question)
	var categories []string
	for _, q := range pool {
		if _, dup := taken[q.ID]; dup {
			continue
		}
		taken[q.ID] = struct{}{}
		if _, ok := partitions[q.Category]; !ok {
			categories = append(categories, q.Category)
		}
		partitions[q.Category] = append(partitions[q.Category], q)
	}
	sort.Strings(categories) // deterministic iteration order

	total := 0
	for _, qs := range partitions {
		total += len(qs)
	}
	if count > total {
		count = total
	}

	share := func(cat string) float64 {
		if len(quota) > 0 {
			return quota[cat]
		}
		return float64(len(partitions[cat])) / float64(total)
	}

	// First pass: rounded per-category draws, capped by partition size.
	out := make([]catalog.Question, 0, count)
	for _, cat := range categories {
		want := int(math.Round(share(cat) * float64(count)))
		if remaining := count - len(out); want > remaining {
			want = remaining
		}
		picked := s.sample(partitions[cat], want)
		out = append(out, picked...)
		partitions[cat] = partitions[cat][len(picked):]
	}

	// Top up from the largest remaining partition until full.
	for len(out) < count {
		largest := ""
		for _, cat := range categories {
			if len(partitions[cat]) == 0 {
				continue
			}
			if largest == "" || len(partitions[cat]) > len(partitions[largest]) {
				largest = cat
			}
		}
		if largest == "" {
			break
		}
		picked := s.sample(partitions[largest], 1)
		out = append(out, picked...)
		partitions[largest] = partitions[largest][len(picked):]
	}
	return out
}
