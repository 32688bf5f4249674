package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MinNumber and MaxNumber bound every dealt card.
	MinNumber = 1
	MaxNumber = 13

	// Target is the value every puzzle must reach.
	Target = 24

	// Epsilon absorbs rounding from chained divisions.
	Epsilon = 1e-6
)

var (
	ErrNumberOutOfRange = errors.New("number out of range")
	ErrBadToken         = errors.New("unrecognized token")
	ErrDealSize         = errors.New("a deal has exactly 4 numbers")
)

// Equals24 reports whether v is within Epsilon of Target.
// It is the only equality rule used to decide a win.
func Equals24(v float64) bool {
	return math.Abs(v-Target) < Epsilon
}

// Quadruple holds the four numbers a puzzle is built from.
type Quadruple [4]int

// Validate checks every number lies in [MinNumber, MaxNumber].
func (q Quadruple) Validate() error {
	for i, n := range q {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("%w: position %d has %d, want %d..%d", ErrNumberOutOfRange, i, n, MinNumber, MaxNumber)
		}
	}
	return nil
}

func (q Quadruple) String() string {
	parts := make([]string, len(q))
	for i, n := range q {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// UnmarshalJSON rejects arrays that are not exactly four long instead of
// truncating or zero-filling them.
func (q *Quadruple) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var ns []int
	if err := json.Unmarshal(b, &ns); err != nil {
		return err
	}
	if len(ns) != len(q) {
		return fmt.Errorf("%w, got %d", ErrDealSize, len(ns))
	}
	copy(q[:], ns)
	return nil
}

// ParseQuadruple reads four numbers separated by commas or spaces.
func ParseQuadruple(s string) (Quadruple, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	var q Quadruple
	if len(fields) != len(q) {
		return q, fmt.Errorf("%w, got %d", ErrDealSize, len(fields))
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return q, fmt.Errorf("number %q: %w", f, err)
		}
		q[i] = n
	}
	return q, q.Validate()
}

// Token is one symbol of a player-built expression.
type Token struct {
	Kind  TokenKind
	Value int      // set when Kind == KindNumber
	Op    Operator // set when Kind == KindOperator
}

func NumberToken(v int) Token { return Token{Kind: KindNumber, Value: v} }
func OperatorToken(op Operator) Token { return Token{Kind: KindOperator, Op: op} }
func LParen() Token { return Token{Kind: KindLParen} }
func RParen() Token { return Token{Kind: KindRParen} }

func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return strconv.Itoa(t.Value)
	case KindOperator:
		return t.Op.String()
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	default:
		return "?"
	}
}

// ParseToken maps a card label to a Token. Both ASCII and display
// glyphs are accepted for operators.
func ParseToken(s string) (Token, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "+":
		return OperatorToken(Add), nil
	case "-", "−":
		return OperatorToken(Sub), nil
	case "*", "×", "x", "X":
		return OperatorToken(Mul), nil
	case "/", "÷":
		return OperatorToken(Div), nil
	case "(":
		return LParen(), nil
	case ")":
		return RParen(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strings.HasPrefix(s, "+") {
		return Token{}, fmt.Errorf("%w: %q", ErrBadToken, s)
	}
	return NumberToken(n), nil
}

// ParseTokens parses each label in order.
func ParseTokens(labels []string) ([]Token, error) {
	out := make([]Token, 0, len(labels))
	for _, l := range labels {
		t, err := ParseToken(l)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// FormatTokens renders tokens back into labels.
func FormatTokens(ts []Token) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

// Outcome is the result of evaluating a token sequence: a value, or
// an invalid marker with the reason.
type Outcome struct {
	Value  float64       `json:"value"`
	Valid  bool          `json:"valid"`
	Reason InvalidReason `json:"reason,omitempty"`
}

func Valued(v float64) Outcome { return Outcome{Value: v, Valid: true} }

func Invalid(r InvalidReason) Outcome { return Outcome{Reason: r} }

// Solved reports whether the outcome is a valid 24.
func (o Outcome) Solved() bool { return o.Valid && Equals24(o.Value) }

// Conflict flags a number token that breaks the use-each-card-once rule.
type Conflict struct {
	Index  int    `json:"index"` // token index, -1 for an unused card
	Value  int    `json:"value"`
	Reason string `json:"reason"`
}

const (
	ConflictNotDealt = "not_dealt"
	ConflictReused   = "reused"
	ConflictUnused   = "unused"
)

// Puzzle is a persisted deal with metadata.
type Puzzle struct {
	ID        string    `json:"id,omitempty"`
	Seed      int64     `json:"seed,omitempty"`
	Numbers   Quadruple `json:"numbers"`
	CreatedAt int64     `json:"createdAt,omitempty"`
	// Optional user metadata
	Name string `json:"name,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Numbers   Quadruple `json:"numbers"`
	CreatedAt int64     `json:"createdAt"`
}

// Attempt records one check-answer action against a puzzle.
type Attempt struct {
	PuzzleID  string        `json:"puzzleId"`
	Tokens    []string      `json:"tokens"`
	Value     float64       `json:"value,omitempty"`
	Valid     bool          `json:"valid"`
	Reason    InvalidReason `json:"reason,omitempty"`
	Correct   bool          `json:"correct"`
	CreatedAt int64         `json:"createdAt"`
}

// Hint tells a UI which cards may be placed next. It never reveals a
// solution.
type Hint struct {
	Next     []TokenKind `json:"next"`
	Unused   []int       `json:"unused"`
	Depth    int         `json:"depth"`    // open parentheses not yet closed
	Complete bool        `json:"complete"` // the sequence is already a full expression
}
