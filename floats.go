package calculator

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// floatPrec is the big.Float precision in bits used for inexact operations
// whose results keep scale fractional digits. Four bits per digit is a little
// more than log2(10), and the extra word covers the integer part of ordinary
// values.
func floatPrec(scale int32) uint {
	if scale < 0 {
		scale = 0
	}
	return 64 + 4*uint(scale)
}

// toFloat converts a decimal to a big.Float with the given precision.
func toFloat(d decimal.Decimal, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetRat(d.Rat())
}

// maxFloatExp bounds the binary exponent of inexact results. It allows a bit
// more than 78000 integer digits.
const maxFloatExp = 1 << 18

// fromFloat converts a big.Float result back to a decimal with at most scale
// fractional digits.
func fromFloat(f *big.Float, scale int32, fn string) (decimal.Decimal, error) {
	exp := f.MantExp(nil)
	if f.IsInf() || exp > maxFloatExp {
		return decimal.Zero, &OverflowError{Func: fn}
	}
	// |f| < 2^exp <= 16^-scale/2, which rounds to zero.
	if exp < -4*int(max(scale, 0)) {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(f.Text('e', -1))
	if err != nil {
		// big.Float always formats as a valid decimal, so this is a bug.
		panic("calculator: bad float conversion: " + err.Error())
	}
	return clampScale(d, scale), nil
}

// fromFloat64 is fromFloat for float64 results. It rounds from the exact
// binary value of v rather than its shortest decimal form.
func fromFloat64(v float64, scale int32, fn string) (decimal.Decimal, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return decimal.Zero, &OverflowError{Func: fn}
	}
	return clampScale(decimal.NewFromBigRat(new(big.Rat).SetFloat64(v), max(scale, 0)), scale), nil
}

// clampScale rounds d half away from zero to scale fractional digits if it
// has more than that. Values with fewer digits are returned as they are.
func clampScale(d decimal.Decimal, scale int32) decimal.Decimal {
	if d.Exponent() < -scale {
		return d.Round(scale)
	}
	return d
}

// bigop runs a computation that may panic with big.ErrNaN, converting such a
// panic into an error. Other panics propagate.
func bigop(f func() *big.Float) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok {
			panic(p)
		}
		var nan big.ErrNaN
		if !errors.As(e, &nan) {
			panic(p)
		}
		r, err = nil, e
	}()
	return f(), nil
}
