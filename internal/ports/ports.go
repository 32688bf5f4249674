package ports

import (
	"context"
	"time"

	"svw.info/make24/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Attempts     int // quadruples drawn (generation only)
	Combinations int // expression trees evaluated
	Duration     time.Duration
}

// Checker decides whether four numbers can make 24.
type Checker interface {
	IsSolvable(ctx context.Context, q domain.Quadruple) (bool, Stats, error)
}

// Generator deals a solvable quadruple from a seed.
type Generator interface {
	Generate(ctx context.Context, seed int64) (*domain.Puzzle, Stats, error)
}

// Evaluator computes the value of a player-built token sequence.
type Evaluator interface {
	Evaluate(tokens []domain.Token) domain.Outcome
}

// Validator checks that an answer uses each dealt number exactly once.
type Validator interface {
	Validate(ctx context.Context, numbers domain.Quadruple, tokens []domain.Token) (ok bool, conflicts []domain.Conflict, err error)
}

// Hinter reports which tokens may legally follow a partial answer.
type Hinter interface {
	Hint(ctx context.Context, numbers domain.Quadruple, tokens []domain.Token) (domain.Hint, error)
}

// Storage persists puzzles and the attempts made against them.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
	RecordAttempt(ctx context.Context, a *domain.Attempt) error
	Attempts(ctx context.Context, puzzleID string) ([]domain.Attempt, error)
}
