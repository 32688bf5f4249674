package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/generator"
	"svw.info/make24/internal/metrics"
	"svw.info/make24/internal/ports"
)

type Service struct {
	Checker   ports.Checker
	Generator ports.Generator
	Evaluator ports.Evaluator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
}

func NewService(c ports.Checker, g ports.Generator, e ports.Evaluator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Checker: c, Generator: g, Evaluator: e, Validator: v, Hinter: h, Storage: st}
}

var (
	errNotConfigured = errors.New("usecase dependency not configured")
	// ErrMissingNumbers means a check named neither a puzzle nor a deal.
	ErrMissingNumbers = errors.New("puzzle id or numbers required")
	// ErrUnsolvable rejects saving a deal that cannot make 24.
	ErrUnsolvable = errors.New("numbers cannot make 24")
)

// Generate deals a solvable puzzle, gives it an ID, and saves it when
// storage is configured.
func (u *Service) Generate(ctx context.Context, seed int64) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	p, st, err := u.Generator.Generate(ctx, seed)
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, generator.ErrAttemptsExhausted) {
			result = metrics.ResultExhausted
		}
		metrics.ObserveGenerate(result, st)
		return nil, st, err
	}
	metrics.ObserveGenerate(metrics.ResultOK, st)
	p.ID = uuid.NewString()
	if u.Storage != nil {
		if err := u.Storage.Save(ctx, p); err != nil {
			return nil, st, fmt.Errorf("save puzzle: %w", err)
		}
	}
	return p, st, nil
}

// Solvable reports whether q can make 24. Cards must be in range.
func (u *Service) Solvable(ctx context.Context, q domain.Quadruple) (bool, ports.Stats, error) {
	if u.Checker == nil {
		return false, ports.Stats{}, errNotConfigured
	}
	if err := q.Validate(); err != nil {
		return false, ports.Stats{}, err
	}
	ok, st, err := u.Checker.IsSolvable(ctx, q)
	if err != nil {
		return false, st, err
	}
	metrics.ObserveSolvable(ok, st)
	return ok, st, nil
}

func (u *Service) Evaluate(ctx context.Context, tokens []domain.Token) (domain.Outcome, error) {
	if u.Evaluator == nil {
		return domain.Outcome{}, errNotConfigured
	}
	o := u.Evaluator.Evaluate(tokens)
	metrics.ObserveEvaluation(o)
	return o, nil
}

// CheckRequest names the deal either by stored puzzle or by its numbers.
type CheckRequest struct {
	PuzzleID string
	Numbers  *domain.Quadruple
	Tokens   []domain.Token
}

// CheckResult is the verdict on one answer.
type CheckResult struct {
	Numbers   domain.Quadruple
	Outcome   domain.Outcome
	Conflicts []domain.Conflict
	Correct   bool
}

// Check evaluates an answer, enforces one use per card, and records the
// attempt against a stored puzzle.
func (u *Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	if u.Evaluator == nil || u.Validator == nil {
		return CheckResult{}, errNotConfigured
	}
	var numbers domain.Quadruple
	switch {
	case req.PuzzleID != "":
		p, err := u.Load(ctx, req.PuzzleID)
		if err != nil {
			return CheckResult{}, err
		}
		numbers = p.Numbers
	case req.Numbers != nil:
		if err := req.Numbers.Validate(); err != nil {
			return CheckResult{}, err
		}
		numbers = *req.Numbers
	default:
		return CheckResult{}, ErrMissingNumbers
	}

	out, err := u.Evaluate(ctx, req.Tokens)
	if err != nil {
		return CheckResult{}, err
	}
	usageOK, conflicts, err := u.Validator.Validate(ctx, numbers, req.Tokens)
	if err != nil {
		return CheckResult{}, err
	}
	res := CheckResult{
		Numbers:   numbers,
		Outcome:   out,
		Conflicts: conflicts,
		Correct:   usageOK && out.Solved(),
	}
	metrics.ObserveCheck(res.Correct)

	if req.PuzzleID != "" && u.Storage != nil {
		a := &domain.Attempt{
			PuzzleID:  req.PuzzleID,
			Tokens:    domain.FormatTokens(req.Tokens),
			Value:     out.Value,
			Valid:     out.Valid,
			Reason:    out.Reason,
			Correct:   res.Correct,
			CreatedAt: time.Now().UnixNano(),
		}
		if err := u.Storage.RecordAttempt(ctx, a); err != nil {
			return res, fmt.Errorf("record attempt: %w", err)
		}
	}
	return res, nil
}

func (u *Service) Hint(ctx context.Context, numbers domain.Quadruple, tokens []domain.Token) (domain.Hint, error) {
	if u.Hinter == nil {
		return domain.Hint{}, errNotConfigured
	}
	return u.Hinter.Hint(ctx, numbers, tokens)
}

// Persistence

// Save stores a caller-supplied puzzle. Like generated ones, it must be
// solvable.
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil || u.Checker == nil {
		return errNotConfigured
	}
	ok, _, err := u.Solvable(ctx, p.Numbers)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsolvable, p.Numbers)
	}
	return u.Storage.Save(ctx, p)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
func (u *Service) Attempts(ctx context.Context, puzzleID string) ([]domain.Attempt, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Attempts(ctx, puzzleID)
}
