package selector

import (
	"fmt"
	"testing"

	"github.com/veritas-labs/versewise/internal/catalog"
)

func poolWithCategories(counts map[string]int) []catalog.Question {
	var out []catalog.Question
	for cat, n := range counts {
		for i := 0; i < n; i++ {
			out = append(out, catalog.Question{
				ID:           fmt.Sprintf("%s-%02d", cat, i),
				Text:         "?",
				Options:      []string{"a", "b"},
				CorrectIndex: 0,
				Category:     cat,
				Difficulty:   catalog.DifficultyEasy,
				Testament:    catalog.TestamentBoth,
			})
		}
	}
	return out
}

func countByCategory(qs []catalog.Question) map[string]int {
	out := make(map[string]int)
	for _, q := range qs {
		out[q.Category]++
	}
	return out
}

func TestBalancedMixed_ProportionalDefault(t *testing.T) {
	s := NewSeeded(11)
	pool := poolWithCategories(map[string]int{"gospels": 10, "prophets": 10})

	got := s.BalancedMixed(pool, 10, nil)
	if len(got) != 10 {
		t.Fatalf("got %d questions, want 10", len(got))
	}
	uniqueIDs(t, got)

	byCat := countByCategory(got)
	if byCat["gospels"] != 5 || byCat["prophets"] != 5 {
		t.Errorf("draw %v, want 5/5 across equal partitions", byCat)
	}
}

func TestBalancedMixed_ExplicitQuota(t *testing.T) {
	s := NewSeeded(12)
	pool := poolWithCategories(map[string]int{"gospels": 20, "prophets": 20})
	quota := map[string]float64{"gospels": 0.8, "prophets": 0.2}

	got := s.BalancedMixed(pool, 10, quota)
	if len(got) != 10 {
		t.Fatalf("got %d questions, want 10", len(got))
	}
	byCat := countByCategory(got)
	if byCat["gospels"] != 8 || byCat["prophets"] != 2 {
		t.Errorf("draw %v, want 8/2 per quota", byCat)
	}
}

func TestBalancedMixed_TopsUpExhaustedPartition(t *testing.T) {
	s := NewSeeded(13)
	// prophets can only supply 2 of its 5-question quota.
	pool := poolWithCategories(map[string]int{"gospels": 20, "prophets": 2})
	quota := map[string]float64{"gospels": 0.5, "prophets": 0.5}

	got := s.BalancedMixed(pool, 10, quota)
	if len(got) != 10 {
		t.Fatalf("got %d questions, want 10 after top-up", len(got))
	}
	uniqueIDs(t, got)

	byCat := countByCategory(got)
	if byCat["prophets"] != 2 {
		t.Errorf("prophets draw = %d, want its full 2", byCat["prophets"])
	}
	if byCat["gospels"] != 8 {
		t.Errorf("gospels draw = %d, want 8 via top-up", byCat["gospels"])
	}
}

func TestBalancedMixed_CountAbovePool(t *testing.T) {
	s := NewSeeded(14)
	pool := poolWithCategories(map[string]int{"gospels": 3, "prophets": 2})

	got := s.BalancedMixed(pool, 10, nil)
	if len(got) != 5 {
		t.Fatalf("got %d questions, want all 5", len(got))
	}
	uniqueIDs(t, got)
}
