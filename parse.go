package calculator

import (
	"errors"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Expr = Operand { op Operand }
// Operand = { '+' | '-' } ( num | Call | '(' Expr ')' )
// Call = funcname '(' Expr { ',' Expr } ')'
// op = '+' | '-' | '*' | '/' | '^'
//
// Operator precedence is not part of the grammar. Each Expr is parsed into a
// flat term, and restructure groups tighter operators afterward.

// Expr is a parsed expression. It is immutable and safe to evaluate
// concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// String renders the expression tree. Parenthesized terms from the input
// appear in round brackets, groups introduced by operator precedence in curly
// brackets.
func (e *Expr) String() string {
	return e.n.String()
}

// maxLiteralExponent bounds the decimal exponent of number literals, so that
// e.g. 1e999999999 cannot make the calculator print a billion zeros.
const maxLiteralExponent = 9999

type parser struct {
	scan *lexer
	// funcs is the set of function names that trigger call parsing for words.
	funcs map[string]Func
	// depth is the current nesting of parentheses and calls, and max is the
	// limit on it. A max of 0 means no limit.
	depth, max int
}

// want is the parse state: whether the next token must begin an operand or
// continue the term with an operator.
type want int8

const (
	wantOperand want = iota
	wantOperator
)

// parse parses an entire input and restructures it by operator precedence.
func (p *parser) parse() (*node, error) {
	n, _, err := p.parseterm(lexToken{}, "")
	if err != nil {
		return nil, err
	}
	return restructure(n), nil
}

// parseterm parses operands joined by operators up to a token in closers, or
// to the end of input if closers is empty. The result is a user term, and the
// token that ended it is returned alongside. open is the bracket that began
// the term, for error messages.
func (p *parser) parseterm(open lexToken, closers string) (*node, lexToken, error) {
	var (
		t    *node
		op   Operator
		neg  bool
		seen bool
	)
	state := wantOperand
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, tok, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent:
			if state != wantOperand {
				return nil, tok, &UnexpectedTokenError{Col: tok.pos, Text: tok.text, Want: "operator"}
			}
			n, err := p.parseoperand(tok)
			if err != nil {
				return nil, tok, err
			}
			if neg {
				n = negate(n)
			}
			t = appendTerm(t, op, n)
			state, neg = wantOperator, false
		case tokenSym:
			if state == wantOperator {
				if strings.Contains(closers, tok.text) {
					return t, tok, nil
				}
				o, ok := parseOperator(tok.text)
				if !ok {
					return nil, tok, badOperator(tok)
				}
				op, state = o, wantOperand
				break
			}
			switch tok.text {
			case "(":
				n, err := p.parenthesized(tok)
				if err != nil {
					return nil, tok, err
				}
				if neg {
					n = negate(n)
				}
				t = appendTerm(t, op, n)
				state, neg = wantOperator, false
			case "+":
				// Unary plus changes nothing.
			case "-":
				neg = !neg
			case ")", ",":
				return nil, tok, &EmptyExpressionError{Col: tok.pos, End: tok.text}
			default:
				return nil, tok, &UnexpectedTokenError{Col: tok.pos, Text: tok.text, Want: "operand"}
			}
		case tokenEOF:
			switch {
			case closers != "":
				return nil, tok, &BracketError{Col: tok.pos, Left: open.text}
			case !seen:
				return nil, tok, ErrEmptyInput
			case state == wantOperand:
				return nil, tok, &EmptyExpressionError{Col: tok.pos}
			}
			return t, tok, nil
		default:
			panic("calculator: unknown token: " + tok.String())
		}
		seen = true
	}
}

// parseoperand parses a word, which is either a function call or a number.
func (p *parser) parseoperand(tok lexToken) (*node, error) {
	name := strings.ToLower(tok.text)
	if fn, ok := p.funcs[name]; ok {
		return p.parsecall(name, fn)
	}
	if tok.kind == tokenIdent {
		return nil, &NameError{Col: tok.pos, Name: tok.text}
	}
	d, err := decimal.NewFromString(tok.text)
	if err != nil {
		return nil, &NumberError{Col: tok.pos, Text: tok.text, Err: err}
	}
	if e := d.Exponent(); e > maxLiteralExponent || e < -maxLiteralExponent {
		return nil, &NumberError{Col: tok.pos, Text: tok.text}
	}
	return constant(d), nil
}

// parsecall parses the bracketed argument list of a call to fn.
func (p *parser) parsecall(name string, fn Func) (*node, error) {
	open, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if open.kind != tokenSym || open.text != "(" {
		return nil, &CallError{Col: open.pos, Func: name, Want: fn.Arity()}
	}
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()
	args := make([]*node, 0, fn.Arity())
	for {
		arg, end, err := p.parseterm(open, ",)")
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if end.text == ")" {
			if len(args) != fn.Arity() {
				return nil, &CallError{Col: end.pos, Func: name, Len: len(args), Want: fn.Arity()}
			}
			return &node{kind: callKind(len(args)), name: name, fn: fn, args: args}, nil
		}
	}
}

// parenthesized parses the rest of a parenthesized subexpression.
func (p *parser) parenthesized(open lexToken) (*node, error) {
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()
	n, _, err := p.parseterm(open, ")")
	return n, err
}

func (p *parser) enter(tok lexToken) error {
	if p.max > 0 && p.depth >= p.max {
		return &NestingError{Col: tok.pos, Max: p.max}
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// appendTerm adds an operand to a term, starting a new term if t is nil.
func appendTerm(t *node, op Operator, n *node) *node {
	if t == nil {
		return term(n)
	}
	t.add(op, n)
	return t
}

// negate applies a unary minus to an operand. Constants absorb the sign.
// Anything else becomes (-1 * n) so that the tree still renders the sign.
func negate(n *node) *node {
	if n.kind == nodeConst {
		return constant(n.num.Neg())
	}
	t := term(constant(decimal.NewFromInt(-1)))
	t.add(Multiplication, n)
	return t
}

// badOperator returns an error appropriate for a symbol following an operand
// that is neither an operator nor a token closing the current term.
func badOperator(tok lexToken) error {
	switch tok.text {
	case ")":
		return &BracketError{Col: tok.pos, Right: tok.text}
	case ",":
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		return &OperatorError{Col: tok.pos, Operator: tok.text}
	}
}

// Parse parses an expression using the calculator's functions.
func (c *Calculator) Parse(src io.RuneScanner) (*Expr, error) {
	p := parser{
		scan:  lex(src, !c.numeric),
		funcs: c.funcs,
		max:   c.maxDepth,
	}
	n, err := p.parse()
	if err != nil {
		if !errors.Is(err, ErrEmptyInput) {
			c.log.Trace().Err(err).Msg("parsing failed")
		}
		return nil, err
	}
	e := &Expr{n: n}
	c.log.Debug().Stringer("tree", e).Msg("parsing succeeded")
	return e, nil
}

// ParseString is a shortcut to parse an expression from a string.
func (c *Calculator) ParseString(src string) (*Expr, error) {
	return c.Parse(strings.NewReader(src))
}
