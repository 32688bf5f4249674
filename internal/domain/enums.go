package domain

import "fmt"

// Operator is one of the four binary arithmetic operations.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
)

// Operators lists every operator in enumeration order.
var Operators = [4]Operator{Add, Sub, Mul, Div}

// Apply computes a op b. ok is false when op is Div and b is zero;
// callers treat that as a disqualified branch rather than a fault.
func (op Operator) Apply(a, b float64) (v float64, ok bool) {
	switch op {
	case Add:
		return a + b, true
	case Sub:
		return a - b, true
	case Mul:
		return a * b, true
	case Div:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}

// String returns the ASCII symbol.
func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// Glyph returns the symbol shown on a card.
func (op Operator) Glyph() string {
	switch op {
	case Mul:
		return "×"
	case Div:
		return "÷"
	default:
		return op.String()
	}
}

// Shape is one of the five ways to parenthesize a op1 b op2 c op3 d.
type Shape int

const (
	ShapeLeftChain  Shape = iota // ((a op1 b) op2 c) op3 d
	ShapeLeftInner               // (a op1 (b op2 c)) op3 d
	ShapeRightInner              // a op1 ((b op2 c) op3 d)
	ShapeRightChain              // a op1 (b op2 (c op3 d))
	ShapeBalanced                // (a op1 b) op2 (c op3 d)
)

// Shapes lists every grouping shape.
var Shapes = [5]Shape{ShapeLeftChain, ShapeLeftInner, ShapeRightInner, ShapeRightChain, ShapeBalanced}

// TokenKind classifies a symbol in a player-built expression.
type TokenKind int

const (
	KindNumber TokenKind = iota
	KindOperator
	KindLParen
	KindRParen
)

func (k TokenKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	case KindLParen:
		return "lparen"
	case KindRParen:
		return "rparen"
	default:
		return "unknown"
	}
}

func (k TokenKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *TokenKind) UnmarshalText(b []byte) error {
	for _, c := range []TokenKind{KindNumber, KindOperator, KindLParen, KindRParen} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", b)
}

// InvalidReason explains why an expression produced no value.
type InvalidReason string

const (
	ReasonNone         InvalidReason = ""
	ReasonEmpty        InvalidReason = "empty"
	ReasonSyntax       InvalidReason = "syntax"
	ReasonUnbalanced   InvalidReason = "unbalanced_parentheses"
	ReasonDivideByZero InvalidReason = "division_by_zero"
)
