package solver

import (
	"context"
	"time"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

// ExhaustiveChecker walks all 24 orderings × 64 operator triples × 5
// shapes on the calling goroutine, stopping at the first match.
type ExhaustiveChecker struct{}

func NewExhaustiveChecker() *ExhaustiveChecker { return &ExhaustiveChecker{} }

func (s *ExhaustiveChecker) IsSolvable(ctx context.Context, q domain.Quadruple) (bool, ports.Stats, error) {
	start := time.Now()
	total := 0
	for _, order := range orderings {
		if err := ctx.Err(); err != nil {
			return false, ports.Stats{Combinations: total, Duration: time.Since(start)}, err
		}
		found, n := searchOrdering(arrange(q, order))
		total += n
		if found {
			return true, ports.Stats{Combinations: total, Duration: time.Since(start)}, nil
		}
	}
	return false, ports.Stats{Combinations: total, Duration: time.Since(start)}, nil
}
