package hint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/make24/internal/domain"
)

func TestNextTokenHint(t *testing.T) {
	h := NewNextToken()
	deal := domain.Quadruple{8, 3, 3, 2}

	cases := []struct {
		name     string
		labels   []string
		next     []domain.TokenKind
		unused   []int
		depth    int
		complete bool
	}{
		{
			name:   "empty",
			next:   []domain.TokenKind{domain.KindNumber, domain.KindLParen},
			unused: []int{8, 3, 3, 2},
		},
		{
			name:     "after number",
			labels:   []string{"8"},
			next:     []domain.TokenKind{domain.KindOperator},
			unused:   []int{3, 3, 2},
			complete: true,
		},
		{
			name:   "inside group",
			labels: []string{"8", "×", "(", "3", "−", "2"},
			next:   []domain.TokenKind{domain.KindOperator, domain.KindRParen},
			unused: []int{3},
			depth:  1,
		},
		{
			name:     "all placed",
			labels:   []string{"8", "×", "(", "3", "−", "2", ")", "×", "3"},
			next:     []domain.TokenKind{domain.KindOperator},
			unused:   []int{},
			complete: true,
		},
		{
			name:   "operator with no cards left",
			labels: []string{"8", "+", "3", "+", "3", "+", "2", "+"},
			next:   []domain.TokenKind{domain.KindLParen},
			unused: []int{},
		},
		{
			name:   "malformed prefix",
			labels: []string{"8", "3"},
			next:   []domain.TokenKind{},
			unused: []int{3, 2},
		},
		{
			name:   "stray close",
			labels: []string{"8", ")"},
			next:   []domain.TokenKind{},
			unused: []int{3, 3, 2},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, err := domain.ParseTokens(tc.labels)
			require.NoError(t, err)
			got, err := h.Hint(context.Background(), deal, ts)
			require.NoError(t, err)
			assert.Equal(t, tc.next, got.Next)
			assert.Equal(t, tc.unused, got.Unused)
			assert.Equal(t, tc.depth, got.Depth)
			assert.Equal(t, tc.complete, got.Complete)
		})
	}
}
