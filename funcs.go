package calculator

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// Operand is an unevaluated function argument. A function decides which of its
// operands to evaluate, and at what scale.
type Operand struct {
	n *node
}

// Eval evaluates the operand, keeping at most scale fractional digits in
// inexact intermediate results.
func (o Operand) Eval(scale int32) (decimal.Decimal, error) {
	return o.n.eval(scale)
}

// String renders the operand the same way Expr.String does.
func (o Operand) String() string {
	return o.n.String()
}

// Func is a function of one, two, or three operands. The zero Func is no
// function at all.
type Func struct {
	arity int
	f1    func(x Operand, scale int32) (decimal.Decimal, error)
	f2    func(x, y Operand, scale int32) (decimal.Decimal, error)
	f3    func(x, y, z Operand, scale int32) (decimal.Decimal, error)
}

// Monadic creates a Func of one operand.
func Monadic(f func(x Operand, scale int32) (decimal.Decimal, error)) Func {
	return Func{arity: 1, f1: f}
}

// Dyadic creates a Func of two operands.
func Dyadic(f func(x, y Operand, scale int32) (decimal.Decimal, error)) Func {
	return Func{arity: 2, f2: f}
}

// Triadic creates a Func of three operands.
func Triadic(f func(x, y, z Operand, scale int32) (decimal.Decimal, error)) Func {
	return Func{arity: 3, f3: f}
}

// Arity returns the number of operands the function takes, or 0 for the zero
// Func.
func (f Func) Arity() int {
	return f.arity
}

func (f Func) call(args []*node, scale int32) (decimal.Decimal, error) {
	switch f.arity {
	case 1:
		return f.f1(Operand{args[0]}, scale)
	case 2:
		return f.f2(Operand{args[0]}, Operand{args[1]}, scale)
	case 3:
		return f.f3(Operand{args[0]}, Operand{args[1]}, Operand{args[2]}, scale)
	default:
		panic("calculator: call of function with arity 0")
	}
}

var globalfuncs = map[string]Func{
	"sin":   Sin,
	"cos":   Monadic(float64fn("cos", math.Cos)),
	"tan":   Monadic(float64fn("tan", math.Tan)),
	"if":    If,
	"round": Round,
	"sqrt": Monadic(bigfn("sqrt", nonnegative, func(out, in *big.Float) *big.Float {
		return out.Sqrt(in)
	})),
	"exp": Monadic(exp),
	"ln":  Monadic(bigfn("ln", positive, bigfloat.Log)),
	"log": Monadic(bigfn("log", positive, func(out, in *big.Float) *big.Float {
		bigfloat.Log(out, in)
		ten := new(big.Float).SetPrec(out.Prec()).SetInt64(10)
		bigfloat.Log(ten, ten)
		return out.Quo(out, ten)
	})),
	"abs": Monadic(func(x Operand, scale int32) (decimal.Decimal, error) {
		v, err := x.Eval(scale)
		if err != nil {
			return decimal.Zero, err
		}
		return v.Abs(), nil
	}),
	"min": Dyadic(pick(func(a, b decimal.Decimal) bool { return a.LessThanOrEqual(b) })),
	"max": Dyadic(pick(func(a, b decimal.Decimal) bool { return a.GreaterThanOrEqual(b) })),
}

// DefaultFuncs returns a copy of the functions a Calculator has unless it is
// created with NoDefaultFuncs.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

// Sin is the sine of its operand in radians, computed in float64 precision.
var Sin = Monadic(float64fn("sin", math.Sin))

// If evaluates its first operand, then evaluates and returns the second if the
// first was nonzero or the third if it was zero. The operand not chosen is
// never evaluated.
var If = Triadic(func(cond, then, els Operand, scale int32) (decimal.Decimal, error) {
	c, err := cond.Eval(scale)
	if err != nil {
		return decimal.Zero, err
	}
	if c.IsZero() {
		return els.Eval(scale)
	}
	return then.Eval(scale)
})

// Round rounds its first operand half away from zero to the number of
// fractional digits given by its second. The digit count is evaluated at scale
// 0 and must be an integer.
var Round = Dyadic(func(x, digits Operand, scale int32) (decimal.Decimal, error) {
	v, err := x.Eval(scale)
	if err != nil {
		return decimal.Zero, err
	}
	p, err := digits.Eval(0)
	if err != nil {
		return decimal.Zero, err
	}
	if !p.IsInteger() || p.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt16)) {
		return decimal.Zero, &DomainError{X: p, Arg: 2, Func: "round"}
	}
	return v.Round(int32(p.IntPart())), nil
})

// float64fn wraps a float64 function. Results are rounded to the scale.
func float64fn(name string, f func(float64) float64) func(Operand, int32) (decimal.Decimal, error) {
	return func(x Operand, scale int32) (decimal.Decimal, error) {
		v, err := x.Eval(scale)
		if err != nil {
			return decimal.Zero, err
		}
		return fromFloat64(f(v.InexactFloat64()), scale, name)
	}
}

// bigfn wraps a big.Float function in the style of bigfloat. f must set out to
// its result at the precision of out. Arguments for which domain returns false
// are rejected before f sees them.
func bigfn(name string, domain func(decimal.Decimal) bool, f func(out, in *big.Float) *big.Float) func(Operand, int32) (decimal.Decimal, error) {
	return func(x Operand, scale int32) (decimal.Decimal, error) {
		v, err := x.Eval(scale)
		if err != nil {
			return decimal.Zero, err
		}
		if !domain(v) {
			return decimal.Zero, &DomainError{X: v, Arg: 1, Func: name}
		}
		prec := floatPrec(scale)
		in := toFloat(v, prec)
		r, err := bigop(func() *big.Float {
			return f(new(big.Float).SetPrec(prec), in)
		})
		if err != nil {
			return decimal.Zero, &DomainError{X: v, Arg: 1, Func: name}
		}
		return fromFloat(r, scale, name)
	}
}

func positive(v decimal.Decimal) bool    { return v.Sign() > 0 }
func nonnegative(v decimal.Decimal) bool { return v.Sign() >= 0 }

// maxExpArg bounds the magnitude of arguments to exp. Anything larger
// overflows or underflows any sensible scale.
var maxExpArg = decimal.NewFromInt(1 << 20)

// exp computes e^x. bigfloat.Exp only sees non-negative arguments; negative
// ones use the reciprocal.
func exp(x Operand, scale int32) (decimal.Decimal, error) {
	v, err := x.Eval(scale)
	if err != nil {
		return decimal.Zero, err
	}
	if v.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	if v.Abs().GreaterThan(maxExpArg) {
		if v.Sign() < 0 {
			return decimal.Zero, nil
		}
		return decimal.Zero, &OverflowError{Func: "exp"}
	}
	prec := floatPrec(scale)
	r := bigfloat.Exp(new(big.Float).SetPrec(prec), toFloat(v.Abs(), prec))
	if v.Sign() < 0 {
		r.Quo(new(big.Float).SetPrec(prec).SetInt64(1), r)
	}
	return fromFloat(r, scale, "exp")
}

// pick creates a function evaluating both operands and returning the first if
// first(x, y), otherwise the second.
func pick(first func(a, b decimal.Decimal) bool) func(Operand, Operand, int32) (decimal.Decimal, error) {
	return func(x, y Operand, scale int32) (decimal.Decimal, error) {
		a, err := x.Eval(scale)
		if err != nil {
			return decimal.Zero, err
		}
		b, err := y.Eval(scale)
		if err != nil {
			return decimal.Zero, err
		}
		if first(a, b) {
			return a, nil
		}
		return b, nil
	}
}
