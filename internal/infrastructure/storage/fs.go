package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"svw.info/make24/internal/domain"
)

var (
	// ErrNotFound is returned when no puzzle exists for an ID.
	ErrNotFound = errors.New("puzzle not found")
	// ErrInvalidID rejects IDs that could escape the data directory.
	ErrInvalidID = errors.New("invalid puzzle id")
)

// FS stores one JSON file per puzzle under <dir>/puzzles and one JSON
// array of attempts per puzzle under <dir>/attempts.
type FS struct {
	dir string
	mu  sync.Mutex // serialises attempt read-modify-write
}

func NewFS(dir string) *FS { return &FS{dir: dir} }

func cleanID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return id, nil
}

func (s *FS) puzzlePath(id string) string { return filepath.Join(s.dir, "puzzles", id+".json") }
func (s *FS) attemptsPath(id string) string { return filepath.Join(s.dir, "attempts", id+".json") }

// writeJSON writes v to a private temp file beside target and renames it
// into place, so concurrent writers never share a temp path.
func writeJSON(target string, v any) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	id, err := cleanID(p.ID)
	if err != nil {
		return err
	}
	return writeJSON(s.puzzlePath(id), p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	id, err := cleanID(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.puzzlePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var out domain.Puzzle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode puzzle %s: %w", id, err)
	}
	return &out, nil
}

// List returns every readable puzzle, newest first. Unreadable files are skipped.
func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	ents, err := os.ReadDir(filepath.Join(s.dir, "puzzles"))
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.PuzzleMeta{}, nil
		}
		return nil, err
	}
	out := make([]domain.PuzzleMeta, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, "puzzles", e.Name()))
		if err != nil {
			continue
		}
		var p domain.Puzzle
		if err := json.Unmarshal(data, &p); err != nil || p.ID == "" {
			continue
		}
		out = append(out, domain.PuzzleMeta{
			ID:        p.ID,
			Name:      p.Name,
			Numbers:   p.Numbers,
			CreatedAt: p.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (s *FS) RecordAttempt(ctx context.Context, a *domain.Attempt) error {
	if a == nil {
		return errors.New("invalid attempt: nil")
	}
	id, err := cleanID(a.PuzzleID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(s.puzzlePath(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.readAttempts(id)
	if err != nil {
		return err
	}
	return writeJSON(s.attemptsPath(id), append(existing, *a))
}

// Attempts returns attempts in the order they were recorded.
func (s *FS) Attempts(ctx context.Context, puzzleID string) ([]domain.Attempt, error) {
	id, err := cleanID(puzzleID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAttempts(id)
}

func (s *FS) readAttempts(id string) ([]domain.Attempt, error) {
	data, err := os.ReadFile(s.attemptsPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Attempt{}, nil
		}
		return nil, err
	}
	var out []domain.Attempt
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode attempts %s: %w", id, err)
	}
	return out, nil
}
