package selector

import (
	"math"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/ledger"
	"github.com/veritas-labs/versewise/internal/levels"
)

// LevelBased draws a level's QuestionCount questions stratified by its
// difficulty mix: per-difficulty counts are the rounded shares, with any
// rounding remainder assigned to the largest-share difficulty. Each
// stratum is drawn with UniformRandomExcluding, so the recently-seen and
// mastered exclusions (and the exhaustion backfill) apply per stratum.
// Strata too small for their quota fall back across the remaining pool.
func (s *Selector) LevelBased(
	pool []catalog.Question,
	level levels.LevelDefinition,
	exclude map[string]struct{},
	stats map[string]ledger.UsageRecord,
) []catalog.Question {
	count := level.QuestionCount
	if count <= 0 {
		return nil
	}

	strata := make(map[catalog.Difficulty][]catalog.Question)
	taken := make(map[string]struct{}, len(pool))
	for _, q := range pool {
		if _, dup := taken[q.ID]; dup {
			continue
		}
		taken[q.ID] = struct{}{}
		strata[q.Difficulty] = append(strata[q.Difficulty], q)
	}

	// Rounded allocation, remainder to the largest share.
	want := make(map[catalog.Difficulty]int)
	allocated := 0
	for _, d := range catalog.AllDifficulties() {
		n := int(math.Round(level.Mix.Share(d) * float64(count)))
		want[d] = n
		allocated += n
	}
	want[level.Mix.Largest()] += count - allocated
	if want[level.Mix.Largest()] < 0 {
		want[level.Mix.Largest()] = 0
	}

	picked := make(map[string]struct{}, count)
	out := make([]catalog.Question, 0, count)
	for _, d := range catalog.AllDifficulties() {
		if want[d] <= 0 {
			continue
		}
		drawn := s.UniformRandomExcluding(strata[d], exclude, stats, want[d])
		drawn = dedupe(drawn, picked)
		out = append(out, drawn...)
	}

	// Short strata: fill the gap from the whole pool, still honoring the
	// exclusion set and session-level dedup.
	if len(out) < count {
		already := make(map[string]struct{}, len(exclude)+len(picked))
		for id := range exclude {
			already[id] = struct{}{}
		}
		for id := range picked {
			already[id] = struct{}{}
		}
		extra := s.UniformRandomExcluding(pool, already, stats, count-len(out))
		extra = dedupe(extra, picked)
		out = append(out, extra...)
	}
	if len(out) > count {
		out = out[:count]
	}
	return out
}
