package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"svw.info/make24/internal/domain"
)

// SQLite persists puzzles and attempts in a single database file.
// database/sql makes it safe for concurrent use.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
// ":memory:" gives a private in-memory database on one connection.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	pragmas := []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := applyMigrations(ctx, db, migrationFS, "migrations"); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO puzzles (id, seed, n1, n2, n3, n4, name, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    seed = excluded.seed,
    n1 = excluded.n1, n2 = excluded.n2, n3 = excluded.n3, n4 = excluded.n4,
    name = excluded.name,
    created_at = excluded.created_at`,
		p.ID, p.Seed, p.Numbers[0], p.Numbers[1], p.Numbers[2], p.Numbers[3], p.Name, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("save puzzle %s: %w", p.ID, err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	var p domain.Puzzle
	err := s.db.QueryRowContext(ctx,
		`SELECT id, seed, n1, n2, n3, n4, name, created_at FROM puzzles WHERE id = ?`, id,
	).Scan(&p.ID, &p.Seed, &p.Numbers[0], &p.Numbers[1], &p.Numbers[2], &p.Numbers[3], &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load puzzle %s: %w", id, err)
	}
	return &p, nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, n1, n2, n3, n4, created_at FROM puzzles ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	defer rows.Close()

	out := []domain.PuzzleMeta{}
	for rows.Next() {
		var m domain.PuzzleMeta
		if err := rows.Scan(&m.ID, &m.Name, &m.Numbers[0], &m.Numbers[1], &m.Numbers[2], &m.Numbers[3], &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan puzzle: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLite) RecordAttempt(ctx context.Context, a *domain.Attempt) error {
	if a == nil {
		return errors.New("invalid attempt: nil")
	}
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM puzzles WHERE id = ?`, a.PuzzleID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check puzzle %s: %w", a.PuzzleID, err)
	}
	toks, err := json.Marshal(a.Tokens)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO attempts (puzzle_id, tokens, value, valid, reason, correct, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.PuzzleID, string(toks), a.Value, a.Valid, string(a.Reason), a.Correct, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("record attempt for %s: %w", a.PuzzleID, err)
	}
	return nil
}

func (s *SQLite) Attempts(ctx context.Context, puzzleID string) ([]domain.Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT tokens, value, valid, reason, correct, created_at
FROM attempts WHERE puzzle_id = ? ORDER BY id`, puzzleID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	out := []domain.Attempt{}
	for rows.Next() {
		var (
			a      domain.Attempt
			toks   string
			reason string
		)
		if err := rows.Scan(&toks, &a.Value, &a.Valid, &reason, &a.Correct, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(toks), &a.Tokens); err != nil {
			return nil, fmt.Errorf("decode attempt tokens: %w", err)
		}
		a.PuzzleID = puzzleID
		a.Reason = domain.InvalidReason(reason)
		out = append(out, a)
	}
	return out, rows.Err()
}
