package validator

import (
	"context"

	"svw.info/make24/internal/domain"
)

// UsageValidator enforces the table rule that every dealt card is played
// exactly once. The evaluator itself knows nothing about the deal.
type UsageValidator struct{}

func New() *UsageValidator { return &UsageValidator{} }

func (v *UsageValidator) Validate(ctx context.Context, numbers domain.Quadruple, tokens []domain.Token) (bool, []domain.Conflict, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	remaining := make(map[int]int, len(numbers))
	for _, n := range numbers {
		remaining[n]++
	}
	dealt := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		dealt[n] = true
	}

	conf := make([]domain.Conflict, 0, 4)
	for i, t := range tokens {
		if t.Kind != domain.KindNumber {
			continue
		}
		switch {
		case !dealt[t.Value]:
			conf = append(conf, domain.Conflict{Index: i, Value: t.Value, Reason: domain.ConflictNotDealt})
		case remaining[t.Value] == 0:
			conf = append(conf, domain.Conflict{Index: i, Value: t.Value, Reason: domain.ConflictReused})
		default:
			remaining[t.Value]--
		}
	}
	// unused cards, reported in deal order
	for _, n := range numbers {
		if remaining[n] > 0 {
			conf = append(conf, domain.Conflict{Index: -1, Value: n, Reason: domain.ConflictUnused})
			remaining[n]--
		}
	}
	return len(conf) == 0, conf, nil
}
