package generator

import "svw.info/make24/internal/ports"

const (
	// DefaultMaxAttempts bounds the resampling loop. With cards 1..13
	// roughly three draws in four are solvable, so the ceiling is only
	// reached when the range itself admits no solution.
	DefaultMaxAttempts = 10000
)

// RandomGenerator deals quadruples and keeps the first one its Checker accepts.
type RandomGenerator struct {
	Checker ports.Checker
	Min     int
	Max     int
	// MaxAttempts <= 0 disables the ceiling; only ctx then stops the loop.
	MaxAttempts int
}

// Option customises a RandomGenerator.
type Option func(*RandomGenerator)

// WithRange sets the inclusive card range.
func WithRange(min, max int) Option {
	return func(g *RandomGenerator) { g.Min, g.Max = min, max }
}

// WithMaxAttempts sets the retry ceiling.
func WithMaxAttempts(n int) Option {
	return func(g *RandomGenerator) { g.MaxAttempts = n }
}

// NewRandomGenerator wires a generator that uses the given checker for solvability.
func NewRandomGenerator(c ports.Checker, opts ...Option) *RandomGenerator {
	g := &RandomGenerator{Checker: c, Min: 1, Max: 13, MaxAttempts: DefaultMaxAttempts}
	for _, o := range opts {
		o(g)
	}
	return g
}
