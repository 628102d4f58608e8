package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/veritas-labs/versewise/internal/catalog"
)

// QuestionRepo reads and seeds the question catalog. It satisfies
// catalog.Source, so the engine can sit directly on the database.
type QuestionRepo struct {
	db *sql.DB
}

// Questions returns the catalog repository.
func (s *Store) Questions() *QuestionRepo {
	return &QuestionRepo{db: s.db}
}

// Query returns a snapshot of questions matching the filter. Database
// errors surface as catalog.ErrUnavailable so the engine applies its
// fallback policy instead of treating the catalog as empty.
func (r *QuestionRepo) Query(ctx context.Context, f catalog.Filter) ([]catalog.Question, error) {
	query := `SELECT id, text, options, correct_index, category, difficulty, testament, explanation, reference
		FROM questions WHERE 1=1`
	var args []any
	if f.Category != "" {
		query += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.Difficulty != "" {
		query += " AND difficulty = ?"
		args = append(args, string(f.Difficulty))
	}
	if f.Testament != "" && f.Testament != catalog.TestamentBoth {
		query += " AND testament IN (?, 'both')"
		args = append(args, string(f.Testament))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []catalog.Question
	for rows.Next() {
		var q catalog.Question
		var options string
		if err := rows.Scan(&q.ID, &q.Text, &options, &q.CorrectIndex,
			&q.Category, (*string)(&q.Difficulty), (*string)(&q.Testament),
			&q.Explanation, &q.Reference); err != nil {
			return nil, fmt.Errorf("%w: scan question: %v", catalog.ErrUnavailable, err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("%w: decode options for %s: %v", catalog.ErrUnavailable, q.ID, err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
	}
	return out, nil
}

// Count returns the number of stored questions.
func (r *QuestionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// Upsert inserts or replaces questions. Invalid questions are rejected.
func (r *QuestionRepo) Upsert(ctx context.Context, questions []catalog.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO questions
		(id, text, options, correct_index, category, difficulty, testament, explanation, reference)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			options = excluded.options,
			correct_index = excluded.correct_index,
			category = excluded.category,
			difficulty = excluded.difficulty,
			testament = excluded.testament,
			explanation = excluded.explanation,
			reference = excluded.reference`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, q := range questions {
		if !q.Valid() {
			return fmt.Errorf("upsert question %q: structurally invalid", q.ID)
		}
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("encode options for %s: %w", q.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, q.ID, q.Text, string(options), q.CorrectIndex,
			q.Category, string(q.Difficulty), string(q.Testament), q.Explanation, q.Reference); err != nil {
			return fmt.Errorf("upsert question %s: %w", q.ID, err)
		}
	}
	return tx.Commit()
}

// SeedIfEmpty loads the given questions when the table has none, so a
// fresh install is playable out of the box.
func (r *QuestionRepo) SeedIfEmpty(ctx context.Context, questions []catalog.Question) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.Upsert(ctx, questions)
}
