package calculator

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// DivisionByZeroError is an error from dividing by zero. Its message is the
// #DIV0 error token.
type DivisionByZeroError struct {
	// X is the dividend.
	X decimal.Decimal
}

func (err *DivisionByZeroError) Error() string {
	return DivZero
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X decimal.Decimal
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// OverflowError is an error returned when a computation produces a value too
// large to represent or to print.
type OverflowError struct {
	// Func is a name identifying the function.
	Func string
}

func (err *OverflowError) Error() string {
	return "result of " + err.Func + " is too large"
}
