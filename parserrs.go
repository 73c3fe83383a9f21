package calculator

import (
	"errors"
	"strconv"
)

// ErrEmptyInput is returned when parsing an input that contains no tokens at
// all. It is not an InputError; Calculate maps it to an empty result.
var ErrEmptyInput = errors.New("empty input")

// LexError indicates that reading the input failed. It implements InputError.
type LexError struct {
	// Text is the part of the token that was scanned before the failure.
	Text string
	// Col is the total number of runes scanned by the lexer up to the error.
	Col int
	// Err is the error from the input.
	Err error
}

func (err *LexError) Error() string {
	return errpos(err.Col, "reading input after "+strconv.Quote(err.Text)+": "+err.Err.Error())
}

func (err *LexError) Unwrap() error {
	return err.Err
}

func (err *LexError) Pos() int {
	return err.Col
}

// UnexpectedTokenError indicates a token in a place where the grammar does
// not allow it, e.g. two numbers in a row or a symbol where an operand
// belongs. It implements InputError.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token.
	Text string
	// Want describes what the parser expected instead.
	Want string
}

func (err *UnexpectedTokenError) Error() string {
	return errpos(err.Col, "expected "+err.Want+", found "+strconv.Quote(err.Text))
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating a symbol following an operand that is
// not an operator. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket or the end of input.
	Col int
	// Left is the unclosed opening bracket. It is empty when Right is set.
	Left string
	// Right is the unopened closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside of a function's
// argument list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments or without an argument list. It implements InputError.
type CallError struct {
	// Col is the position of the token that broke the call.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the function call tried to imply, or 0
	// if there was no argument list.
	Len int
	// Want is the function's arity.
	Want int
}

func (err *CallError) Error() string {
	if err.Len == 0 {
		return errpos(err.Col, "call of "+err.Func+" without argument list")
	}
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments, need "+strconv.Itoa(err.Want))
}

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression or one
// that ends on an operator.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// NameError is an error indicating a word that is neither a number nor the
// name of a function. It implements InputError.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the unknown name.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// NumberError is an error indicating a malformed number literal. It
// implements InputError.
type NumberError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal.
	Text string
	// Err is the reason the literal was rejected, if any.
	Err error
}

func (err *NumberError) Error() string {
	msg := "invalid number " + strconv.Quote(err.Text)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return errpos(err.Col, msg)
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

func (err *NumberError) Pos() int {
	return err.Col
}

// NestingError is an error indicating parentheses or function calls nested
// deeper than the calculator allows. It implements InputError.
type NestingError struct {
	// Col is the position of the bracket that went too deep.
	Col int
	// Max is the maximum depth.
	Max int
}

func (err *NestingError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Max)+" levels")
}

func (err *NestingError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*NestingError)(nil)
)
