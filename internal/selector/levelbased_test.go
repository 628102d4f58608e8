package selector

import (
	"fmt"
	"testing"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/levels"
)

func poolWithDifficulties(counts map[catalog.Difficulty]int) []catalog.Question {
	var out []catalog.Question
	for _, d := range catalog.AllDifficulties() {
		for i := 0; i < counts[d]; i++ {
			out = append(out, catalog.Question{
				ID:           fmt.Sprintf("%s-%02d", d, i),
				Text:         "?",
				Options:      []string{"a", "b", "c"},
				CorrectIndex: 1,
				Category:     "mixed",
				Difficulty:   d,
				Testament:    catalog.TestamentBoth,
			})
		}
	}
	return out
}

func countByDifficulty(qs []catalog.Question) map[catalog.Difficulty]int {
	out := make(map[catalog.Difficulty]int)
	for _, q := range qs {
		out[q.Difficulty]++
	}
	return out
}

func TestLevelBased_MatchesConfiguredMix(t *testing.T) {
	s := NewSeeded(21)
	pool := poolWithDifficulties(map[catalog.Difficulty]int{
		catalog.DifficultyEasy: 17, catalog.DifficultyMedium: 17, catalog.DifficultyHard: 16,
	})
	level := levels.LevelDefinition{
		Level: 1, ScoreThreshold: 0, QuestionCount: 10, TimePerQuestionSeconds: 30,
		Mix: levels.DifficultyMix{Easy: 0.7, Medium: 0.3, Hard: 0.0},
	}

	got := s.LevelBased(pool, level, nil, nil)
	if len(got) != 10 {
		t.Fatalf("got %d questions, want exactly 10", len(got))
	}
	uniqueIDs(t, got)

	byDiff := countByDifficulty(got)
	if byDiff[catalog.DifficultyEasy] != 7 {
		t.Errorf("easy draw = %d, want 7", byDiff[catalog.DifficultyEasy])
	}
	if byDiff[catalog.DifficultyMedium] != 3 {
		t.Errorf("medium draw = %d, want 3", byDiff[catalog.DifficultyMedium])
	}
	if byDiff[catalog.DifficultyHard] != 0 {
		t.Errorf("hard draw = %d, want 0", byDiff[catalog.DifficultyHard])
	}
}

func TestLevelBased_RemainderToLargestShare(t *testing.T) {
	s := NewSeeded(22)
	pool := poolWithDifficulties(map[catalog.Difficulty]int{
		catalog.DifficultyEasy: 20, catalog.DifficultyMedium: 20, catalog.DifficultyHard: 20,
	})
	// Rounded shares of 9: easy 2.7→3, medium 2.7→3, hard 3.6→4 would
	// overshoot; the correction lands on the largest share (hard).
	level := levels.LevelDefinition{
		Level: 5, ScoreThreshold: 0, QuestionCount: 9, TimePerQuestionSeconds: 20,
		Mix: levels.DifficultyMix{Easy: 0.3, Medium: 0.3, Hard: 0.4},
	}

	got := s.LevelBased(pool, level, nil, nil)
	if len(got) != 9 {
		t.Fatalf("got %d questions, want 9", len(got))
	}
	byDiff := countByDifficulty(got)
	if byDiff[catalog.DifficultyHard] != 3 {
		t.Errorf("hard draw = %d, want 3 after remainder correction", byDiff[catalog.DifficultyHard])
	}
}

func TestLevelBased_ShortStratumFillsFromPool(t *testing.T) {
	s := NewSeeded(23)
	// Only 2 easy available against a 7-easy quota.
	pool := poolWithDifficulties(map[catalog.Difficulty]int{
		catalog.DifficultyEasy: 2, catalog.DifficultyMedium: 20, catalog.DifficultyHard: 20,
	})
	level := levels.LevelDefinition{
		Level: 1, ScoreThreshold: 0, QuestionCount: 10, TimePerQuestionSeconds: 30,
		Mix: levels.DifficultyMix{Easy: 0.7, Medium: 0.3, Hard: 0.0},
	}

	got := s.LevelBased(pool, level, nil, nil)
	if len(got) != 10 {
		t.Fatalf("got %d questions, want 10 after cross-stratum fill", len(got))
	}
	uniqueIDs(t, got)
}
