package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/quiz"
)

// PlayerStats is the per-user aggregate updated after every session.
// BestScore feeds level progression.
type PlayerStats struct {
	UserID        string
	BestScore     int
	TotalSessions int
	LongestStreak int

	CategoryStats   map[string]quiz.BreakdownStat
	DifficultyStats map[catalog.Difficulty]quiz.BreakdownStat
}

// PlayerStatsRepo reads and updates per-user aggregates.
type PlayerStatsRepo struct {
	db *sql.DB
}

// Players returns the player-stats repository.
func (s *Store) Players() *PlayerStatsRepo {
	return &PlayerStatsRepo{db: s.db}
}

// Get returns the user's aggregates, or a zero-value record for a user
// with no history.
func (r *PlayerStatsRepo) Get(ctx context.Context, userID string) (PlayerStats, error) {
	stats := PlayerStats{
		UserID:          userID,
		CategoryStats:   map[string]quiz.BreakdownStat{},
		DifficultyStats: map[catalog.Difficulty]quiz.BreakdownStat{},
	}
	var categoryJSON, difficultyJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT best_score, total_sessions, longest_streak, category_stats, difficulty_stats
		 FROM player_stats WHERE user_id = ?`, userID).
		Scan(&stats.BestScore, &stats.TotalSessions, &stats.LongestStreak, &categoryJSON, &difficultyJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("query player stats: %w", err)
	}
	if err := json.Unmarshal([]byte(categoryJSON), &stats.CategoryStats); err != nil {
		return stats, fmt.Errorf("decode category stats: %w", err)
	}
	if err := json.Unmarshal([]byte(difficultyJSON), &stats.DifficultyStats); err != nil {
		return stats, fmt.Errorf("decode difficulty stats: %w", err)
	}
	return stats, nil
}

// ApplySummary folds a completed session into the aggregates: bumps the
// session count, raises best score and longest streak when beaten, and
// accumulates the per-category and per-difficulty counters.
func (r *PlayerStatsRepo) ApplySummary(ctx context.Context, sum *quiz.Summary) error {
	stats, err := r.Get(ctx, sum.UserID)
	if err != nil {
		return err
	}

	stats.TotalSessions++
	if sum.FinalScore > stats.BestScore {
		stats.BestScore = sum.FinalScore
	}
	if sum.BestStreak > stats.LongestStreak {
		stats.LongestStreak = sum.BestStreak
	}
	for cat, bs := range sum.ByCategory {
		agg := stats.CategoryStats[cat]
		agg.Answered += bs.Answered
		agg.Correct += bs.Correct
		stats.CategoryStats[cat] = agg
	}
	for diff, bs := range sum.ByDifficulty {
		agg := stats.DifficultyStats[diff]
		agg.Answered += bs.Answered
		agg.Correct += bs.Correct
		stats.DifficultyStats[diff] = agg
	}

	categoryJSON, err := json.Marshal(stats.CategoryStats)
	if err != nil {
		return fmt.Errorf("encode category stats: %w", err)
	}
	difficultyJSON, err := json.Marshal(stats.DifficultyStats)
	if err != nil {
		return fmt.Errorf("encode difficulty stats: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO player_stats (user_id, best_score, total_sessions, longest_streak, category_stats, difficulty_stats)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			best_score = excluded.best_score,
			total_sessions = excluded.total_sessions,
			longest_streak = excluded.longest_streak,
			category_stats = excluded.category_stats,
			difficulty_stats = excluded.difficulty_stats`,
		sum.UserID, stats.BestScore, stats.TotalSessions, stats.LongestStreak,
		string(categoryJSON), string(difficultyJSON))
	if err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}
	return nil
}
