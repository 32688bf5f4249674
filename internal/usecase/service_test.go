package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/evaluator"
	"svw.info/make24/internal/generator"
	"svw.info/make24/internal/hint"
	"svw.info/make24/internal/infrastructure/storage"
	"svw.info/make24/internal/solver"
	"svw.info/make24/internal/validator"
)

func newService(t *testing.T) *Service {
	t.Helper()
	c := solver.NewExhaustiveChecker()
	return NewService(
		c,
		generator.NewRandomGenerator(c),
		evaluator.New(),
		validator.New(),
		hint.NewNextToken(),
		storage.NewFS(t.TempDir()),
	)
}

func toks(t *testing.T, labels ...string) []domain.Token {
	t.Helper()
	ts, err := domain.ParseTokens(labels)
	require.NoError(t, err)
	return ts
}

func TestGenerateSavesPuzzle(t *testing.T) {
	u := newService(t)
	ctx := context.Background()

	p, st, err := u.Generate(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.GreaterOrEqual(t, st.Attempts, 1)

	ok, _, err := u.Solvable(ctx, p.Numbers)
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err := u.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Numbers, loaded.Numbers)
}

func TestSolvableRejectsOutOfRange(t *testing.T) {
	u := newService(t)
	_, _, err := u.Solvable(context.Background(), domain.Quadruple{0, 4, 6, 1})
	assert.ErrorIs(t, err, domain.ErrNumberOutOfRange)
}

func TestCheckByNumbers(t *testing.T) {
	u := newService(t)
	ctx := context.Background()
	deal := domain.Quadruple{8, 3, 3, 2}

	res, err := u.Check(ctx, CheckRequest{Numbers: &deal, Tokens: toks(t, "8", "×", "(", "3", "−", "2", ")", "×", "3")})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Empty(t, res.Conflicts)

	// 24 reached, but a card is played twice
	res, err = u.Check(ctx, CheckRequest{Numbers: &deal, Tokens: toks(t, "8", "×", "3")})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.True(t, res.Outcome.Solved())
	assert.NotEmpty(t, res.Conflicts)

	res, err = u.Check(ctx, CheckRequest{Numbers: &deal, Tokens: toks(t, "8", "÷", "(", "3", "-", "3", ")", "+", "2")})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, domain.ReasonDivideByZero, res.Outcome.Reason)
}

func TestCheckRecordsAttempts(t *testing.T) {
	u := newService(t)
	ctx := context.Background()
	p := &domain.Puzzle{ID: "fixed", Numbers: domain.Quadruple{1, 2, 3, 4}, CreatedAt: 1}
	require.NoError(t, u.Save(ctx, p))

	_, err := u.Check(ctx, CheckRequest{PuzzleID: "fixed", Tokens: toks(t, "1", "+", "2", "+", "3", "+", "4")})
	require.NoError(t, err)
	res, err := u.Check(ctx, CheckRequest{PuzzleID: "fixed", Tokens: toks(t, "(", "1", "+", "3", ")", "*", "(", "2", "+", "4", ")")})
	require.NoError(t, err)
	assert.True(t, res.Correct)

	as, err := u.Attempts(ctx, "fixed")
	require.NoError(t, err)
	require.Len(t, as, 2)
	assert.False(t, as[0].Correct)
	assert.Equal(t, 10.0, as[0].Value)
	assert.True(t, as[1].Correct)
	assert.Equal(t, []string{"(", "1", "+", "3", ")", "*", "(", "2", "+", "4", ")"}, as[1].Tokens)
}

func TestSaveRejectsUnsolvable(t *testing.T) {
	u := newService(t)
	ctx := context.Background()

	err := u.Save(ctx, &domain.Puzzle{ID: "ones", Numbers: domain.Quadruple{1, 1, 1, 1}})
	assert.ErrorIs(t, err, ErrUnsolvable)
	_, err = u.Load(ctx, "ones")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = u.Save(ctx, &domain.Puzzle{ID: "zero", Numbers: domain.Quadruple{0, 1, 2, 3}})
	assert.ErrorIs(t, err, domain.ErrNumberOutOfRange)
}

func TestCheckErrors(t *testing.T) {
	u := newService(t)
	ctx := context.Background()

	_, err := u.Check(ctx, CheckRequest{Tokens: toks(t, "4")})
	assert.ErrorIs(t, err, ErrMissingNumbers)

	_, err = u.Check(ctx, CheckRequest{PuzzleID: "nope", Tokens: toks(t, "4")})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	bad := domain.Quadruple{1, 2, 3, 99}
	_, err = u.Check(ctx, CheckRequest{Numbers: &bad})
	assert.ErrorIs(t, err, domain.ErrNumberOutOfRange)
}

func TestNotConfigured(t *testing.T) {
	u := NewService(nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	_, _, err := u.Generate(ctx, 1)
	assert.ErrorIs(t, err, errNotConfigured)
	_, _, err = u.Solvable(ctx, domain.Quadruple{1, 2, 3, 4})
	assert.ErrorIs(t, err, errNotConfigured)
	_, err = u.Evaluate(ctx, nil)
	assert.ErrorIs(t, err, errNotConfigured)
	_, err = u.Hint(ctx, domain.Quadruple{1, 2, 3, 4}, nil)
	assert.ErrorIs(t, err, errNotConfigured)
	_, err = u.List(ctx)
	assert.ErrorIs(t, err, errNotConfigured)
}

func TestGenerateWithoutStorage(t *testing.T) {
	c := solver.NewParallelChecker(2)
	u := NewService(c, generator.NewRandomGenerator(c), nil, nil, nil, nil)
	p, _, err := u.Generate(context.Background(), 9)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestGenerateExhaustion(t *testing.T) {
	c := solver.NewExhaustiveChecker()
	g := generator.NewRandomGenerator(c, generator.WithRange(1, 1), generator.WithMaxAttempts(3))
	u := NewService(c, g, nil, nil, nil, nil)
	_, st, err := u.Generate(context.Background(), 5)
	assert.ErrorIs(t, err, generator.ErrAttemptsExhausted)
	assert.Equal(t, 3, st.Attempts)
}
