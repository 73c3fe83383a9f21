package calculator

import (
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// Operator is a binary infix operator.
type Operator int8

const (
	Plus Operator = iota
	Minus
	Multiplication
	Division
	Potency
)

// Operators contains the runes which are parsed as binary operators, in the
// order of the Operator constants.
const Operators = "+-*/^"

// maxExactExponent bounds the integer exponents that are computed exactly.
// Anything larger goes through bigfloat.
const maxExactExponent = 1 << 16

// maxPowDigits bounds the number of digits of an exact power.
const maxPowDigits = 1 << 16

// parseOperator gets the operator for a token. The second result is false if
// text is not an operator.
func parseOperator(text string) (Operator, bool) {
	if len(text) != 1 {
		return 0, false
	}
	for i := 0; i < len(Operators); i++ {
		if Operators[i] == text[0] {
			return Operator(i), true
		}
	}
	return 0, false
}

// Symbol returns the rune that denotes the operator.
func (op Operator) Symbol() byte {
	if op < 0 || int(op) >= len(Operators) {
		panic("calculator: invalid operator " + strconv.Itoa(int(op)))
	}
	return Operators[op]
}

func (op Operator) String() string {
	return string(op.Symbol())
}

// Precedence returns the binding tier of the operator. Higher binds tighter.
// Operators of equal precedence associate left to right.
func (op Operator) Precedence() int {
	switch op {
	case Plus, Minus:
		return 0
	case Multiplication, Division:
		return 1
	case Potency:
		return 2
	default:
		panic("calculator: invalid operator " + strconv.Itoa(int(op)))
	}
}

// Apply computes a op b. Addition, subtraction, and multiplication are exact.
// Division and inexact exponentiation keep at most scale fractional digits,
// rounding half away from zero.
func (op Operator) Apply(a, b decimal.Decimal, scale int32) (decimal.Decimal, error) {
	switch op {
	case Plus:
		return a.Add(b), nil
	case Minus:
		return a.Sub(b), nil
	case Multiplication:
		return a.Mul(b), nil
	case Division:
		if b.IsZero() {
			return decimal.Zero, &DivisionByZeroError{X: a}
		}
		return a.DivRound(b, scale), nil
	case Potency:
		return pow(a, b, scale)
	default:
		panic("calculator: invalid operator " + strconv.Itoa(int(op)))
	}
}

// pow computes a^b. Integer exponents are exact when the result fits in
// maxPowDigits digits, except that negative ones divide to scale digits.
// Other powers are approximated with bigfloat.
func pow(a, b decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if b.IsInteger() && b.Abs().LessThanOrEqual(decimal.NewFromInt(maxExactExponent)) {
		n := b.IntPart()
		if powDigits(a)*abs64(n) <= maxPowDigits {
			if n >= 0 {
				return powInt(a, n), nil
			}
			if a.IsZero() {
				return decimal.Zero, &DivisionByZeroError{X: decimal.NewFromInt(1)}
			}
			return decimal.NewFromInt(1).DivRound(powInt(a, -n), scale), nil
		}
	}
	switch a.Sign() {
	case 0:
		if b.Sign() < 0 {
			return decimal.Zero, &DivisionByZeroError{X: decimal.NewFromInt(1)}
		}
		return decimal.Zero, nil
	case -1:
		// Real powers of negative numbers only exist for integer exponents.
		if !b.IsInteger() {
			return decimal.Zero, &DomainError{X: a, Arg: 1, Func: "^"}
		}
		r, err := pow(a.Neg(), b, scale)
		if err != nil || b.Mod(decimal.NewFromInt(2)).IsZero() {
			return r, err
		}
		return r.Neg(), nil
	}
	prec := floatPrec(scale)
	x := toFloat(a, prec)
	y := toFloat(b, prec)
	r, err := bigop(func() *big.Float {
		return bigfloat.Pow(new(big.Float).SetPrec(prec), x, y)
	})
	if err != nil {
		return decimal.Zero, &DomainError{X: b, Arg: 2, Func: "^"}
	}
	return fromFloat(r, scale, "^")
}

// powInt computes a^n exactly by repeated squaring. n must be non-negative.
func powInt(a decimal.Decimal, n int64) decimal.Decimal {
	r := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 != 0 {
			r = r.Mul(a)
		}
		n >>= 1
		if n > 0 {
			a = a.Mul(a)
		}
	}
	return r
}

// powDigits is the number of digits needed to print |a| in full, counting
// both the coefficient and the zeros its exponent adds on either side. a^n
// prints with at most n times as many.
func powDigits(a decimal.Decimal) int64 {
	return int64(a.NumDigits()) + abs64(int64(a.Exponent()))
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
