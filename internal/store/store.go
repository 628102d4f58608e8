// Package store is the SQLite persistence layer: question catalog,
// per-user usage records, session summaries, and player aggregate stats.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. Statements are idempotent so reopening an
// existing database is a no-op.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_index INTEGER NOT NULL,
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			testament TEXT NOT NULL,
			explanation TEXT NOT NULL DEFAULT '',
			reference TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS usage_records (
			user_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			times_shown INTEGER NOT NULL DEFAULT 0,
			times_correct INTEGER NOT NULL DEFAULT 0,
			last_shown_at TIMESTAMP,
			PRIMARY KEY (user_id, question_id)
		)`,
		`CREATE TABLE IF NOT EXISTS session_summaries (
			session_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			final_score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			answered_count INTEGER NOT NULL,
			correct_count INTEGER NOT NULL,
			wrong_count INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			best_streak INTEGER NOT NULL,
			by_category TEXT NOT NULL,
			by_difficulty TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			completed_at TIMESTAMP NOT NULL,
			degraded INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_user_completed
			ON session_summaries (user_id, completed_at DESC)`,
		`CREATE TABLE IF NOT EXISTS player_stats (
			user_id TEXT PRIMARY KEY,
			best_score INTEGER NOT NULL DEFAULT 0,
			total_sessions INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			category_stats TEXT NOT NULL DEFAULT '{}',
			difficulty_stats TEXT NOT NULL DEFAULT '{}'
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. VERSEWISE_DB environment variable
// 2. $XDG_DATA_HOME/versewise/versewise.db
// 3. ~/.local/share/versewise/versewise.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("VERSEWISE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "versewise", "versewise.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
