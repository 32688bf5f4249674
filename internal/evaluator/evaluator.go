// Package evaluator computes the value of a player-built token sequence
// under the grammar
//
//	expr   := term (("+" | "-") term)*
//	term   := factor (("*" | "/") factor)*
//	factor := NUMBER | "(" expr ")"
//
// Tokens arrive pre-segmented, so adjacent numbers never merge.
package evaluator

import (
	"svw.info/make24/internal/domain"
)

// Evaluator is stateless; one value may be shared by any number of callers.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

// Evaluate returns the value of tokens, or an invalid outcome naming the
// first problem found. It never returns an error.
func (e *Evaluator) Evaluate(tokens []domain.Token) domain.Outcome {
	if len(tokens) == 0 {
		return domain.Invalid(domain.ReasonEmpty)
	}
	p := &parser{toks: tokens}
	v, err := p.expr()
	if err != nil {
		return domain.Invalid(err.reason)
	}
	if t, ok := p.peek(); ok {
		if t.Kind == domain.KindRParen {
			return domain.Invalid(domain.ReasonUnbalanced)
		}
		return domain.Invalid(domain.ReasonSyntax)
	}
	return domain.Valued(v)
}

// EvaluateStrings parses card labels and evaluates them. An unknown
// label is a syntax error.
func (e *Evaluator) EvaluateStrings(labels []string) domain.Outcome {
	ts, err := domain.ParseTokens(labels)
	if err != nil {
		return domain.Invalid(domain.ReasonSyntax)
	}
	return e.Evaluate(ts)
}

type evalError struct{ reason domain.InvalidReason }

func (e *evalError) Error() string { return string(e.reason) }

func fail(r domain.InvalidReason) *evalError { return &evalError{reason: r} }

type parser struct {
	toks  []domain.Token
	pos   int
	depth int
}

func (p *parser) peek() (domain.Token, bool) {
	if p.pos >= len(p.toks) {
		return domain.Token{}, false
	}
	return p.toks[p.pos], true
}

// peekOp returns the operator at the cursor if it is one of want.
func (p *parser) peekOp(want ...domain.Operator) (domain.Operator, bool) {
	t, ok := p.peek()
	if !ok || t.Kind != domain.KindOperator {
		return 0, false
	}
	for _, w := range want {
		if t.Op == w {
			return w, true
		}
	}
	return 0, false
}

func (p *parser) expr() (float64, *evalError) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp(domain.Add, domain.Sub)
		if !ok {
			return v, nil
		}
		p.pos++
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		v, _ = op.Apply(v, rhs)
	}
}

func (p *parser) term() (float64, *evalError) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp(domain.Mul, domain.Div)
		if !ok {
			return v, nil
		}
		p.pos++
		rhs, err := p.factor()
		if err != nil {
			return 0, err
		}
		var applied bool
		if v, applied = op.Apply(v, rhs); !applied {
			return 0, fail(domain.ReasonDivideByZero)
		}
	}
}

func (p *parser) factor() (float64, *evalError) {
	t, ok := p.peek()
	if !ok {
		// trailing operator or unclosed "("
		return 0, fail(domain.ReasonSyntax)
	}
	switch t.Kind {
	case domain.KindNumber:
		p.pos++
		return float64(t.Value), nil
	case domain.KindLParen:
		p.pos++
		p.depth++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		closing, ok := p.peek()
		if !ok {
			return 0, fail(domain.ReasonUnbalanced)
		}
		if closing.Kind != domain.KindRParen {
			return 0, fail(domain.ReasonSyntax)
		}
		p.pos++
		p.depth--
		return v, nil
	case domain.KindRParen:
		if p.depth == 0 {
			return 0, fail(domain.ReasonUnbalanced)
		}
		return 0, fail(domain.ReasonSyntax)
	default:
		return 0, fail(domain.ReasonSyntax)
	}
}
