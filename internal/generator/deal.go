package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

var (
	// ErrAttemptsExhausted means the attempt ceiling was hit without a
	// solvable draw. It points at a misconfigured range, not bad luck.
	ErrAttemptsExhausted = errors.New("no solvable quadruple found")
	ErrInvalidRange      = errors.New("invalid card range")
)

// Generate draws four independent uniform cards from [Min, Max] until the
// checker accepts one. A zero seed is replaced by a random one so the
// returned puzzle can always be replayed from its Seed.
func (g *RandomGenerator) Generate(ctx context.Context, seed int64) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	if g.Min < 0 || g.Min > g.Max {
		return nil, ports.Stats{}, fmt.Errorf("%w: %d..%d", ErrInvalidRange, g.Min, g.Max)
	}
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, ports.Stats{}, err
		}
		seed = s
	}
	rng := rand.New(rand.NewSource(seed))

	var st ports.Stats
	for g.MaxAttempts <= 0 || st.Attempts < g.MaxAttempts {
		if err := ctx.Err(); err != nil {
			st.Duration = time.Since(start)
			return nil, st, err
		}
		q := g.draw(rng)
		st.Attempts++
		ok, cst, err := g.Checker.IsSolvable(ctx, q)
		st.Combinations += cst.Combinations
		if err != nil {
			st.Duration = time.Since(start)
			return nil, st, err
		}
		if ok {
			st.Duration = time.Since(start)
			return &domain.Puzzle{
				Seed:      seed,
				Numbers:   q,
				CreatedAt: time.Now().UnixNano(),
			}, st, nil
		}
	}
	st.Duration = time.Since(start)
	return nil, st, fmt.Errorf("%w: %d attempts over cards %d..%d", ErrAttemptsExhausted, st.Attempts, g.Min, g.Max)
}

func (g *RandomGenerator) draw(rng *rand.Rand) domain.Quadruple {
	var q domain.Quadruple
	span := g.Max - g.Min + 1
	for i := range q {
		q[i] = g.Min + rng.Intn(span)
	}
	return q
}
