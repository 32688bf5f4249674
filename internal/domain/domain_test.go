package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquals24Tolerance(t *testing.T) {
	cases := []struct {
		v    float64
		want bool
	}{
		{24, true},
		{23.9999995, true},
		{24.0000005, true},
		{23.999, false},
		{24.001, false},
		{7, false},
		{8.0 / (3.0 - 8.0/3.0), true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Equals24(tc.v), "Equals24(%v)", tc.v)
	}
}

func TestOperatorApply(t *testing.T) {
	v, ok := Add.Apply(3, 4)
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)

	v, ok = Sub.Apply(3, 4)
	assert.True(t, ok)
	assert.Equal(t, -1.0, v)

	v, ok = Mul.Apply(3, 4)
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)

	v, ok = Div.Apply(3, 4)
	assert.True(t, ok)
	assert.Equal(t, 0.75, v)

	_, ok = Div.Apply(3, 0)
	assert.False(t, ok, "zero divisor must disqualify")
}

func TestParseToken(t *testing.T) {
	cases := []struct {
		in   string
		want Token
	}{
		{"+", OperatorToken(Add)},
		{"-", OperatorToken(Sub)},
		{"−", OperatorToken(Sub)},
		{"*", OperatorToken(Mul)},
		{"×", OperatorToken(Mul)},
		{"/", OperatorToken(Div)},
		{"÷", OperatorToken(Div)},
		{"(", LParen()},
		{")", RParen()},
		{"13", NumberToken(13)},
		{" 0 ", NumberToken(0)},
	}
	for _, tc := range cases {
		got, err := ParseToken(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "1.5", "-3", "+3", "^", "sqrt"} {
		_, err := ParseToken(bad)
		assert.ErrorIs(t, err, ErrBadToken, bad)
	}
}

func TestFormatTokensRoundTrip(t *testing.T) {
	labels := []string{"8", "*", "(", "3", "-", "2", ")", "/", "1"}
	ts, err := ParseTokens(labels)
	require.NoError(t, err)
	assert.Equal(t, labels, FormatTokens(ts))
}

func TestQuadrupleValidate(t *testing.T) {
	assert.NoError(t, Quadruple{1, 13, 7, 7}.Validate())
	assert.ErrorIs(t, Quadruple{0, 1, 2, 3}.Validate(), ErrNumberOutOfRange)
	assert.ErrorIs(t, Quadruple{1, 2, 3, 14}.Validate(), ErrNumberOutOfRange)
}

func TestParseQuadruple(t *testing.T) {
	q, err := ParseQuadruple("4, 1 8,7")
	require.NoError(t, err)
	assert.Equal(t, Quadruple{4, 1, 8, 7}, q)
	assert.Equal(t, "4,1,8,7", q.String())

	_, err = ParseQuadruple("1,2,3")
	assert.ErrorIs(t, err, ErrDealSize)
	_, err = ParseQuadruple("1,2,3,20")
	assert.ErrorIs(t, err, ErrNumberOutOfRange)
}

func TestQuadrupleJSONLength(t *testing.T) {
	var q Quadruple
	require.NoError(t, json.Unmarshal([]byte(`[8,3,3,2]`), &q))
	assert.Equal(t, Quadruple{8, 3, 3, 2}, q)

	for _, in := range []string{`[1,2,3]`, `[1,1,1,1,6]`, `[]`} {
		t.Run(in, func(t *testing.T) {
			var q Quadruple
			assert.ErrorIs(t, json.Unmarshal([]byte(in), &q), ErrDealSize)
		})
	}

	var wrapped struct {
		Numbers *Quadruple `json:"numbers"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"numbers":null}`), &wrapped))
	assert.Nil(t, wrapped.Numbers)
}

func TestTokenKindText(t *testing.T) {
	for _, k := range []TokenKind{KindNumber, KindOperator, KindLParen, KindRParen} {
		b, err := k.MarshalText()
		require.NoError(t, err)
		var got TokenKind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}
	var k TokenKind
	assert.Error(t, k.UnmarshalText([]byte("comma")))
}
