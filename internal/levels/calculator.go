package levels

import (
	"fmt"
	"sort"
)

// Calculator maps cumulative best score to a progression tier. It is a
// pure lookup over an ordered level table.
type Calculator struct {
	table []LevelDefinition
}

// NewCalculator builds a calculator over the given table. The table must
// be non-empty with strictly increasing thresholds starting at 0.
func NewCalculator(table []LevelDefinition) (*Calculator, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("level table is empty")
	}
	sorted := append([]LevelDefinition(nil), table...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	if sorted[0].ScoreThreshold != 0 {
		return nil, fmt.Errorf("level %d: first threshold must be 0, got %d", sorted[0].Level, sorted[0].ScoreThreshold)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ScoreThreshold <= sorted[i-1].ScoreThreshold {
			return nil, fmt.Errorf("level %d: threshold %d not above previous %d",
				sorted[i].Level, sorted[i].ScoreThreshold, sorted[i-1].ScoreThreshold)
		}
	}
	return &Calculator{table: sorted}, nil
}

// MustCalculator is NewCalculator for known-good tables (the default one).
func MustCalculator(table []LevelDefinition) *Calculator {
	c, err := NewCalculator(table)
	if err != nil {
		panic(err)
	}
	return c
}

// CurrentLevel returns the highest level whose threshold is <= score.
// Monotonic non-decreasing in score. Negative scores clamp to level 1.
func (c *Calculator) CurrentLevel(score int) LevelDefinition {
	// Binary search for the first threshold above score.
	idx := sort.Search(len(c.table), func(i int) bool {
		return c.table[i].ScoreThreshold > score
	})
	if idx == 0 {
		return c.table[0]
	}
	return c.table[idx-1]
}

// NextLevel returns the level after the current one, or the current level
// when already at the maximum.
func (c *Calculator) NextLevel(score int) LevelDefinition {
	cur := c.CurrentLevel(score)
	for i, def := range c.table {
		if def.Level == cur.Level {
			if i+1 < len(c.table) {
				return c.table[i+1]
			}
			return def
		}
	}
	return cur
}

// ProgressToNext returns how far score has advanced from the current
// threshold toward the next, clamped to [0,1]. Exactly 0.0 at the current
// threshold; reaching the next threshold rolls the player into that level,
// so the value wraps back to the new level's 0.0 rather than reporting
// 1.0. Only the max level, which has nothing above it, pins at 1.0 —
// callers rendering a level-up animation should key off CurrentLevel
// changing, not off this value reaching 1.0.
func (c *Calculator) ProgressToNext(score int) float64 {
	cur := c.CurrentLevel(score)
	next := c.NextLevel(score)
	if next.Level == cur.Level {
		return 1.0
	}
	span := next.ScoreThreshold - cur.ScoreThreshold
	progress := float64(score-cur.ScoreThreshold) / float64(span)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// MaxLevel returns the top of the table.
func (c *Calculator) MaxLevel() LevelDefinition {
	return c.table[len(c.table)-1]
}
