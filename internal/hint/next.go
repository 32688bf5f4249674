package hint

import (
	"context"

	"svw.info/make24/internal/domain"
)

// NextToken tells a UI which cards it may enable after a partial answer.
// It follows the evaluator's grammar and never searches for a solution.
type NextToken struct{}

func NewNextToken() *NextToken { return &NextToken{} }

// Hint scans tokens once. A malformed prefix yields no next kinds so the
// UI can offer only undo.
func (h *NextToken) Hint(ctx context.Context, numbers domain.Quadruple, tokens []domain.Token) (domain.Hint, error) {
	if err := ctx.Err(); err != nil {
		return domain.Hint{}, err
	}
	out := domain.Hint{Unused: unused(numbers, tokens), Next: []domain.TokenKind{}}

	// expectOperand: the grammar needs a factor next (start, after an
	// operator, after "("). Otherwise an operator or ")" may follow.
	expectOperand := true
	depth := 0
	for _, t := range tokens {
		switch t.Kind {
		case domain.KindNumber:
			if !expectOperand {
				return out, nil
			}
			expectOperand = false
		case domain.KindOperator:
			if expectOperand {
				return out, nil
			}
			expectOperand = true
		case domain.KindLParen:
			if !expectOperand {
				return out, nil
			}
			depth++
		case domain.KindRParen:
			if expectOperand || depth == 0 {
				return out, nil
			}
			depth--
		}
	}
	out.Depth = depth
	if expectOperand {
		if len(out.Unused) > 0 {
			out.Next = append(out.Next, domain.KindNumber)
		}
		out.Next = append(out.Next, domain.KindLParen)
		return out, nil
	}
	out.Next = append(out.Next, domain.KindOperator)
	if depth > 0 {
		out.Next = append(out.Next, domain.KindRParen)
	}
	out.Complete = depth == 0
	return out, nil
}

// unused lists dealt cards not yet placed, in deal order.
func unused(numbers domain.Quadruple, tokens []domain.Token) []int {
	placed := map[int]int{}
	for _, t := range tokens {
		if t.Kind == domain.KindNumber {
			placed[t.Value]++
		}
	}
	out := make([]int, 0, len(numbers))
	for _, n := range numbers {
		if placed[n] > 0 {
			placed[n]--
			continue
		}
		out = append(out, n)
	}
	return out
}
