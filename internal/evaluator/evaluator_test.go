package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/make24/internal/domain"
)

func TestEvaluateValues(t *testing.T) {
	e := New()
	cases := []struct {
		name   string
		labels []string
		want   float64
	}{
		{"left to right", []string{"6", "÷", "1", "−", "3", "+", "4"}, 7},
		{"parentheses", []string{"8", "×", "(", "3", "−", "2", ")", "×", "3"}, 24},
		{"precedence", []string{"2", "+", "3", "*", "4"}, 14},
		{"left assoc subtraction", []string{"10", "-", "4", "-", "3"}, 3},
		{"left assoc division", []string{"12", "/", "3", "/", "2"}, 2},
		{"nested", []string{"(", "(", "1", "+", "3", ")", ")", "*", "(", "2", "+", "4", ")"}, 24},
		{"fractional intermediate", []string{"8", "/", "(", "3", "-", "8", "/", "3", ")"}, 24},
		{"single number", []string{"13"}, 13},
		{"multi-digit adjacent to paren", []string{"(", "12", ")", "+", "12"}, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := e.EvaluateStrings(tc.labels)
			require.True(t, out.Valid, "reason=%s", out.Reason)
			assert.InDelta(t, tc.want, out.Value, 1e-9)
		})
	}
}

func TestEvaluateInvalid(t *testing.T) {
	e := New()
	cases := []struct {
		name   string
		labels []string
		reason domain.InvalidReason
	}{
		{"empty", nil, domain.ReasonEmpty},
		{"division by zero", []string{"5", "÷", "0"}, domain.ReasonDivideByZero},
		{"zero divisor from group", []string{"5", "/", "(", "2", "-", "2", ")"}, domain.ReasonDivideByZero},
		{"trailing open paren", []string{"4", "+", "("}, domain.ReasonSyntax},
		{"trailing operator", []string{"4", "+"}, domain.ReasonSyntax},
		{"leading operator", []string{"*", "4"}, domain.ReasonSyntax},
		{"two numbers", []string{"4", "5"}, domain.ReasonSyntax},
		{"two operators", []string{"4", "+", "*", "5"}, domain.ReasonSyntax},
		{"empty parens", []string{"(", ")"}, domain.ReasonSyntax},
		{"number then paren", []string{"4", "(", "5", ")"}, domain.ReasonSyntax},
		{"unclosed", []string{"(", "4", "+", "2"}, domain.ReasonUnbalanced},
		{"stray close", []string{"4", "+", "2", ")"}, domain.ReasonUnbalanced},
		{"leading close", []string{")", "4"}, domain.ReasonUnbalanced},
		{"unknown label", []string{"4", "^", "2"}, domain.ReasonSyntax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := e.EvaluateStrings(tc.labels)
			assert.False(t, out.Valid)
			assert.Equal(t, tc.reason, out.Reason)
			assert.False(t, out.Solved())
		})
	}
}

func TestEvaluateSolvedOutcome(t *testing.T) {
	e := New()
	out := e.EvaluateStrings([]string{"6", "÷", "1", "−", "3", "+", "4"})
	require.True(t, out.Valid)
	assert.False(t, domain.Equals24(out.Value))

	out = e.EvaluateStrings([]string{"8", "×", "(", "3", "−", "2", ")", "×", "3"})
	require.True(t, out.Valid)
	assert.True(t, domain.Equals24(out.Value))
	assert.True(t, out.Solved())
}

func TestEvaluateIdempotent(t *testing.T) {
	e := New()
	ts := []domain.Token{
		domain.NumberToken(1), domain.OperatorToken(domain.Div), domain.LParen(),
		domain.NumberToken(3), domain.OperatorToken(domain.Sub), domain.NumberToken(3), domain.RParen(),
	}
	first := e.Evaluate(ts)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Evaluate(ts))
	}

	valid := []domain.Token{domain.NumberToken(4), domain.OperatorToken(domain.Mul), domain.NumberToken(6)}
	first = e.Evaluate(valid)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Evaluate(valid))
	}
	assert.True(t, first.Solved())
}
