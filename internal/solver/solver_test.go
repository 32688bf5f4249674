package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

var checkers = []struct {
	name string
	c    ports.Checker
}{
	{"exhaustive", NewExhaustiveChecker()},
	{"parallel", NewParallelChecker(0)},
	{"parallel-1", NewParallelChecker(1)},
}

func TestIsSolvableKnownHands(t *testing.T) {
	cases := []struct {
		q    domain.Quadruple
		want bool
	}{
		{domain.Quadruple{1, 2, 3, 4}, true},   // (1+3)×(2+4)
		{domain.Quadruple{4, 1, 8, 7}, true},   // (8-4)×(7-1)
		{domain.Quadruple{3, 3, 8, 8}, true},   // 8÷(3-8÷3)
		{domain.Quadruple{1, 5, 5, 5}, true},   // 5×(5-1÷5)
		{domain.Quadruple{1, 3, 4, 6}, true},   // 6÷(1-3÷4)
		{domain.Quadruple{4, 4, 10, 10}, true}, // (10×10-4)÷4
		{domain.Quadruple{1, 1, 1, 1}, false},
		{domain.Quadruple{1, 1, 1, 2}, false},
		{domain.Quadruple{13, 13, 13, 13}, false},
	}
	for _, ch := range checkers {
		t.Run(ch.name, func(t *testing.T) {
			for _, tc := range cases {
				ok, st, err := ch.c.IsSolvable(context.Background(), tc.q)
				require.NoError(t, err)
				assert.Equal(t, tc.want, ok, "hand %v", tc.q)
				assert.Positive(t, st.Combinations)
				if !tc.want {
					assert.Equal(t, 24*64*5, st.Combinations, "unsolvable hand %v must exhaust the space", tc.q)
				}
			}
		})
	}
}

// Every multiset of four cards from 1..13: 1362 of the 1820 hands reach 24.
func TestIsSolvableFullDeck(t *testing.T) {
	for _, ch := range checkers[:2] {
		t.Run(ch.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			solvable, total := 0, 0
			for a := 1; a <= 13; a++ {
				for b := a; b <= 13; b++ {
					for c := b; c <= 13; c++ {
						for d := c; d <= 13; d++ {
							ok, _, err := ch.c.IsSolvable(ctx, domain.Quadruple{a, b, c, d})
							require.NoError(t, err)
							total++
							if ok {
								solvable++
							}
						}
					}
				}
			}
			assert.Equal(t, 1820, total)
			assert.Equal(t, 1362, solvable)
		})
	}
}

func TestIsSolvableOrderIndependent(t *testing.T) {
	s := NewExhaustiveChecker()
	base := domain.Quadruple{3, 3, 8, 8}
	for _, order := range orderings {
		var q domain.Quadruple
		for i, j := range order {
			q[i] = base[j]
		}
		ok, _, err := s.IsSolvable(context.Background(), q)
		require.NoError(t, err)
		assert.True(t, ok, "ordering %v", q)
	}
}

func TestIsSolvableCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, ch := range checkers {
		t.Run(ch.name, func(t *testing.T) {
			_, _, err := ch.c.IsSolvable(ctx, domain.Quadruple{1, 1, 1, 1})
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestOrderingsAreDistinct(t *testing.T) {
	require.Len(t, orderings, 24)
	seen := map[[4]int]bool{}
	for _, o := range orderings {
		var k [4]int
		copy(k[:], o)
		assert.False(t, seen[k], "duplicate ordering %v", o)
		seen[k] = true
	}
}

func TestEvalShapeGroupings(t *testing.T) {
	// a=8 b=4 c=2 d=1 with op1=- op2=/ op3=-
	a, b, c, d := 8.0, 4.0, 2.0, 1.0
	cases := []struct {
		s    domain.Shape
		want float64
	}{
		{domain.ShapeLeftChain, ((a - b) / c) - d},
		{domain.ShapeLeftInner, (a - (b / c)) - d},
		{domain.ShapeRightInner, a - ((b / c) - d)},
		{domain.ShapeRightChain, a - (b / (c - d))},
		{domain.ShapeBalanced, (a - b) / (c - d)},
	}
	for _, tc := range cases {
		got, ok := evalShape(tc.s, a, b, c, d, domain.Sub, domain.Div, domain.Sub)
		require.True(t, ok)
		assert.Equal(t, tc.want, got, "shape %d", tc.s)
	}

	_, ok := evalShape(domain.ShapeBalanced, 1, 1, 2, 2, domain.Add, domain.Div, domain.Sub)
	assert.False(t, ok, "(1+1)/(2-2) divides by zero")
}
