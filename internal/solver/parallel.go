package solver

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

// errFound stops sibling goroutines once one ordering reaches 24.
var errFound = errors.New("solution found")

// ParallelChecker fans the 24 orderings out over an errgroup. Results
// combine by logical OR; the first match cancels the rest.
type ParallelChecker struct {
	// Workers bounds concurrent orderings; <= 0 means GOMAXPROCS.
	Workers int
}

func NewParallelChecker(workers int) *ParallelChecker {
	return &ParallelChecker{Workers: workers}
}

func (s *ParallelChecker) IsSolvable(ctx context.Context, q domain.Quadruple) (bool, ports.Stats, error) {
	start := time.Now()
	var total atomic.Int64

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, order := range orderings {
		vals := arrange(q, order)
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			found, n := searchOrdering(vals)
			total.Add(int64(n))
			if found {
				return errFound
			}
			return nil
		})
	}
	err := g.Wait()
	st := ports.Stats{Combinations: int(total.Load()), Duration: time.Since(start)}
	if errors.Is(err, errFound) {
		return true, st, nil
	}
	if err := ctx.Err(); err != nil {
		return false, st, err
	}
	return false, st, nil
}
