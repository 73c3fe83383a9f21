package calculator_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator"
)

func TestArity(t *testing.T) {
	var zero calculator.Func
	assert.Equal(t, 0, zero.Arity())
	assert.Equal(t, 1, calculator.Sin.Arity())
	assert.Equal(t, 2, calculator.Round.Arity())
	assert.Equal(t, 3, calculator.If.Arity())
	for name, fn := range calculator.DefaultFuncs() {
		assert.Contains(t, []int{1, 2, 3}, fn.Arity(), "function %s", name)
	}
}

func TestDefaultFuncsCopy(t *testing.T) {
	m := calculator.DefaultFuncs()
	for _, name := range []string{"sin", "cos", "tan", "if", "round", "sqrt", "exp", "ln", "log", "abs", "min", "max"} {
		assert.Contains(t, m, name)
	}
	delete(m, "sin")
	assert.Contains(t, calculator.DefaultFuncs(), "sin")
}

func TestOperandsAreLazy(t *testing.T) {
	var calls int
	count := calculator.Monadic(func(x calculator.Operand, scale int32) (decimal.Decimal, error) {
		calls++
		return x.Eval(scale)
	})
	calc := calculator.New().Register("count", count)
	assert.Equal(t, "1", calc.Calculate("if(1, count(1), count(2))"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "2", calc.Calculate("if(0, count(1), count(2))"))
	assert.Equal(t, 2, calls)
}

func TestOperandString(t *testing.T) {
	var got string
	show := calculator.Dyadic(func(x, y calculator.Operand, scale int32) (decimal.Decimal, error) {
		got = x.String() + " | " + y.String()
		return decimal.Zero, nil
	})
	calc := calculator.New().Register("show", show)
	assert.Equal(t, "0", calc.Calculate("show(1 + 2 * 3, -(4))"))
	assert.Equal(t, "(1 + {2 * 3}) | ((-1 * (4)))", got)
}

func TestOperandScale(t *testing.T) {
	// Functions choose the scale of their operands.
	exact := calculator.Monadic(func(x calculator.Operand, scale int32) (decimal.Decimal, error) {
		return x.Eval(scale + 5)
	})
	calc := calculator.New(calculator.Scale(2)).Register("exact", exact)
	assert.Equal(t, "0.3333333", calc.Calculate("exact(1 / 3)"))
	assert.Equal(t, "0.33", calc.Calculate("1 / 3"))
}

func TestFuncErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"sqrt", "sqrt(-4)", &calculator.DomainError{X: decimal.NewFromInt(-4), Arg: 1, Func: "sqrt"}},
		{"ln", "ln(-1)", &calculator.DomainError{X: decimal.NewFromInt(-1), Arg: 1, Func: "ln"}},
		{"log", "log(0)", &calculator.DomainError{X: decimal.Zero, Arg: 1, Func: "log"}},
		{"round", "round(1, 0.5)", &calculator.DomainError{X: decimal.RequireFromString("0.5"), Arg: 2, Func: "round"}},
		{"roundbig", "round(1, 40000)", &calculator.DomainError{X: decimal.NewFromInt(40000), Arg: 2, Func: "round"}},
		{"exp", "exp(2000000)", &calculator.OverflowError{Func: "exp"}},
		{"div", "abs(1 / 0)", &calculator.DivisionByZeroError{X: decimal.NewFromInt(1)}},
	}
	calc := calculator.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := calc.ParseString(c.in)
			require.NoError(t, err)
			_, err = calc.Eval(e)
			require.Error(t, err)
			assert.Equal(t, c.want.Error(), err.Error())
			assert.IsType(t, c.want, err)
		})
	}
}

func TestFuncErrorsPropagate(t *testing.T) {
	sentinel := errors.New("sentinel")
	fail := calculator.Monadic(func(x calculator.Operand, scale int32) (decimal.Decimal, error) {
		return decimal.Zero, sentinel
	})
	calc := calculator.New().Register("fail", fail)
	e, err := calc.ParseString("1 + max(2, fail(3))")
	require.NoError(t, err)
	_, err = calc.Eval(e)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "#ERROR(sentinel)", calc.Calculate("fail(0)"))
}

func TestExpUnderflow(t *testing.T) {
	assert.Equal(t, "0", calculator.Calculate("exp(-2000000)"))
	assert.Equal(t, "0", calculator.Calculate("exp(-100)"))
	assert.Equal(t, "1", calculator.Calculate("exp(0)"))
}

func TestTrig(t *testing.T) {
	calc := calculator.New(calculator.Scale(6))
	assert.Equal(t, "0", calc.Calculate("sin(0)"))
	assert.Equal(t, "1", calc.Calculate("cos(0)"))
	assert.Equal(t, "0", calc.Calculate("tan(0)"))
	assert.Equal(t, "1", calc.Calculate("tan(0.785398163397)"))
	assert.Equal(t, "-1", calc.Calculate("cos(3.14159265358979)"))
}
