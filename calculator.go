package calculator

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Error tokens returned by Calculate.
const (
	// SyntaxError is the result for input that does not parse.
	SyntaxError = "#SYNTAXERROR"
	// DivZero is the result for a division by zero.
	DivZero = "#DIV0"
)

// DefaultScale is the scale of a Calculator created without the Scale option.
const DefaultScale = 10

// DefaultMaxDepth is the nesting limit of a Calculator created without the
// MaxDepth option.
const DefaultMaxDepth = 200

// Calculator parses and evaluates expressions. Calculate, Parse, and Eval are
// safe to call concurrently, as is SetScale. Register is not; register
// functions before sharing the calculator.
//
// The zero Calculator is ready to use with scale 0 and no functions.
type Calculator struct {
	scale    atomic.Int32
	funcs    map[string]Func
	maxDepth int
	numeric  bool
	log      zerolog.Logger
}

// Option is an option used when creating a Calculator.
type Option interface {
	option(*Calculator)
}

type (
	scaleopt   int32
	depthopt   int
	logopt     struct{ log zerolog.Logger }
	funcsopt   map[string]Func
	nofuncsopt struct{}
	numericopt struct{}
)

// Scale sets the maximum number of fractional digits kept by inexact
// operations.
func Scale(scale int32) Option {
	return scaleopt(scale)
}

func (o scaleopt) option(c *Calculator) { c.scale.Store(int32(o)) }

// MaxDepth sets the limit on nested parentheses and function calls. Zero or a
// negative value removes the limit, leaving only the goroutine stack.
func MaxDepth(depth int) Option {
	return depthopt(depth)
}

func (o depthopt) option(c *Calculator) { c.maxDepth = int(o) }

// WithLogger sets the logger for parse and evaluation events. The default
// discards everything.
func WithLogger(log zerolog.Logger) Option {
	return logopt{log}
}

func (o logopt) option(c *Calculator) { c.log = o.log }

// Funcs registers a group of functions, as if by Register.
func Funcs(fns map[string]Func) Option {
	return funcsopt(fns)
}

func (o funcsopt) option(c *Calculator) {
	for k, v := range o {
		c.Register(k, v)
	}
}

// NoDefaultFuncs removes the default functions. It applies in order, so
// functions from earlier options are removed too.
func NoDefaultFuncs() Option {
	return nofuncsopt{}
}

func (nofuncsopt) option(c *Calculator) { c.funcs = make(map[string]Func) }

// NumericOnly makes letters invalid in the input, so that expressions contain
// nothing but numbers, operators, and parentheses. Function names no longer
// parse.
func NumericOnly() Option {
	return numericopt{}
}

func (numericopt) option(c *Calculator) { c.numeric = true }

// New creates a calculator with the default functions, then applies options
// in order.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		funcs:    DefaultFuncs(),
		maxDepth: DefaultMaxDepth,
		log:      zerolog.Nop(),
	}
	c.scale.Store(DefaultScale)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.option(c)
	}
	return c
}

// Register declares a function, replacing any function with the same name.
// Names are case-insensitive. Registering the zero Func removes the name.
// Returns c for chaining.
func (c *Calculator) Register(name string, fn Func) *Calculator {
	name = strings.ToLower(name)
	if fn.Arity() == 0 {
		delete(c.funcs, name)
		return c
	}
	if c.funcs == nil {
		c.funcs = make(map[string]Func)
	}
	c.funcs[name] = fn
	return c
}

// Scale returns the maximum number of fractional digits kept by inexact
// operations.
func (c *Calculator) Scale() int32 {
	return c.scale.Load()
}

// SetScale changes the scale for subsequent evaluations.
func (c *Calculator) SetScale(scale int32) {
	c.scale.Store(scale)
}

// Calculate evaluates an expression and formats the result. Blank input gives
// an empty string. Input that does not parse gives SyntaxError. Evaluation
// errors give their message if it is already an error token, like DivZero,
// and otherwise #ERROR(message). Successful results are decimals in plain
// notation without trailing zeros.
func (c *Calculator) Calculate(input string) string {
	if blank(input) {
		return ""
	}
	e, err := c.ParseString(input)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			return ""
		}
		c.log.Debug().Str("input", input).Str("result", SyntaxError).Msg("evaluation failed")
		return SyntaxError
	}
	r, err := c.Eval(e)
	if err != nil {
		tok := errorToken(err)
		c.log.Debug().Str("input", input).Str("result", tok).Err(err).Msg("evaluation failed")
		return tok
	}
	s := r.String()
	c.log.Debug().Str("input", input).Str("result", s).Msg("evaluation succeeded")
	return s
}

// errorToken formats an evaluation error.
func errorToken(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "#") {
		return msg
	}
	return "#ERROR(" + msg + ")"
}

// blank reports whether s contains only whitespace runes.
func blank(s string) bool {
	for _, r := range s {
		if !isSpace(r) {
			return false
		}
	}
	return true
}

var std = New()

// Calculate evaluates an expression using a calculator with the default scale
// and functions.
func Calculate(input string) string {
	return std.Calculate(input)
}
