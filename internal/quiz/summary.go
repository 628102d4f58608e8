package quiz

import (
	"time"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/scoring"
)

// BreakdownStat is a per-category or per-difficulty slice of a summary.
type BreakdownStat struct {
	Answered int
	Correct  int
}

// Summary is the immutable record of a completed session, handed to the
// external store. Once built it never changes; the working SessionState
// behind it is discarded.
type Summary struct {
	SessionID string
	UserID    string
	Mode      scoring.GameMode

	FinalScore     int
	TotalQuestions int
	AnsweredCount  int
	CorrectCount   int
	WrongCount     int
	Accuracy       float64
	BestStreak     int

	ByCategory   map[string]BreakdownStat
	ByDifficulty map[catalog.Difficulty]BreakdownStat

	Duration    time.Duration
	CompletedAt time.Time
	Degraded    bool
}

// buildSummary collapses a terminal session state into its summary.
func buildSummary(s SessionState, completedAt time.Time) *Summary {
	byCategory := make(map[string]BreakdownStat)
	byDifficulty := make(map[catalog.Difficulty]BreakdownStat)
	for i, q := range s.Questions {
		res, ok := s.answered[i]
		if !ok {
			continue
		}
		cs := byCategory[q.Category]
		ds := byDifficulty[q.Difficulty]
		cs.Answered++
		ds.Answered++
		if res.IsCorrect {
			cs.Correct++
			ds.Correct++
		}
		byCategory[q.Category] = cs
		byDifficulty[q.Difficulty] = ds
	}

	answered := len(s.answered)
	var accuracy float64
	if answered > 0 {
		accuracy = float64(s.CorrectCount) / float64(answered)
	}

	return &Summary{
		SessionID:      s.SessionID,
		UserID:         s.UserID,
		Mode:           s.Mode,
		FinalScore:     s.Score,
		TotalQuestions: len(s.Questions),
		AnsweredCount:  answered,
		CorrectCount:   s.CorrectCount,
		WrongCount:     s.WrongCount,
		Accuracy:       accuracy,
		BestStreak:     s.BestStreak,
		ByCategory:     byCategory,
		ByDifficulty:   byDifficulty,
		Duration:       completedAt.Sub(s.StartTime),
		CompletedAt:    completedAt,
		Degraded:       s.Degraded,
	}
}
