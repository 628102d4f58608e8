package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/veritas-labs/versewise/internal/quiz"
	"github.com/veritas-labs/versewise/internal/scoring"
)

// SummaryRepo appends completed-session summaries and serves the recent
// history for the stats command.
type SummaryRepo struct {
	db *sql.DB
}

// Summaries returns the session-summary repository.
func (s *Store) Summaries() *SummaryRepo {
	return &SummaryRepo{db: s.db}
}

// Append stores one summary. Re-appending the same session id is a no-op,
// matching the idempotent completeSession surface.
func (r *SummaryRepo) Append(ctx context.Context, sum *quiz.Summary) error {
	byCategory, err := json.Marshal(sum.ByCategory)
	if err != nil {
		return fmt.Errorf("encode category breakdown: %w", err)
	}
	byDifficulty, err := json.Marshal(sum.ByDifficulty)
	if err != nil {
		return fmt.Errorf("encode difficulty breakdown: %w", err)
	}

	degraded := 0
	if sum.Degraded {
		degraded = 1
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO session_summaries
		 (session_id, user_id, mode, final_score, total_questions, answered_count,
		  correct_count, wrong_count, accuracy, best_streak, by_category, by_difficulty,
		  duration_ms, completed_at, degraded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.SessionID, sum.UserID, string(sum.Mode), sum.FinalScore, sum.TotalQuestions,
		sum.AnsweredCount, sum.CorrectCount, sum.WrongCount, sum.Accuracy, sum.BestStreak,
		string(byCategory), string(byDifficulty), sum.Duration.Milliseconds(),
		sum.CompletedAt, degraded)
	if err != nil {
		return fmt.Errorf("append summary: %w", err)
	}
	return nil
}

// Recent returns the user's most recent summaries, newest first.
func (r *SummaryRepo) Recent(ctx context.Context, userID string, limit int) ([]quiz.Summary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, user_id, mode, final_score, total_questions, answered_count,
		        correct_count, wrong_count, accuracy, best_streak, by_category, by_difficulty,
		        duration_ms, completed_at, degraded
		 FROM session_summaries WHERE user_id = ?
		 ORDER BY completed_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []quiz.Summary
	for rows.Next() {
		var sum quiz.Summary
		var mode, byCategory, byDifficulty string
		var durationMs int64
		var degraded int
		if err := rows.Scan(&sum.SessionID, &sum.UserID, &mode, &sum.FinalScore,
			&sum.TotalQuestions, &sum.AnsweredCount, &sum.CorrectCount, &sum.WrongCount,
			&sum.Accuracy, &sum.BestStreak, &byCategory, &byDifficulty,
			&durationMs, &sum.CompletedAt, &degraded); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum.Mode = scoring.GameMode(mode)
		sum.Duration = time.Duration(durationMs) * time.Millisecond
		sum.Degraded = degraded != 0
		if err := json.Unmarshal([]byte(byCategory), &sum.ByCategory); err != nil {
			return nil, fmt.Errorf("decode category breakdown: %w", err)
		}
		if err := json.Unmarshal([]byte(byDifficulty), &sum.ByDifficulty); err != nil {
			return nil, fmt.Errorf("decode difficulty breakdown: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	return out, nil
}
