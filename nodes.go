package calculator

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// node is a node in the syntax tree of an expression.
type node struct {
	kind nodeKind

	// num is the value of a constant.
	num decimal.Decimal

	// name and fn are the declared name and the bound function of a call.
	// args holds one, two, or three arguments, according to kind.
	name string
	fn   Func
	args []*node

	// head, ops, and terms make up a term: head ops[0] terms[0] ops[1] ...
	head  *node
	ops   []Operator
	terms []*node
	// synthetic marks a term introduced by precedence restructuring rather
	// than written by the user.
	synthetic bool
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeConst   // num
	nodeTerm    // head, then fold each (ops[i], terms[i]) left to right
	nodeUnary   // fn(args[0])
	nodeBinary  // fn(args[0], args[1])
	nodeTernary // fn(args[0], args[1], args[2])
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeConst:
		return "Const"
	case nodeTerm:
		return "Term"
	case nodeUnary:
		return "Unary"
	case nodeBinary:
		return "Binary"
	case nodeTernary:
		return "Ternary"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// callKind gives the node kind for a call with n arguments.
func callKind(n int) nodeKind {
	switch n {
	case 1:
		return nodeUnary
	case 2:
		return nodeBinary
	case 3:
		return nodeTernary
	default:
		panic("calculator: no call node with " + strconv.Itoa(n) + " arguments")
	}
}

func constant(d decimal.Decimal) *node {
	return &node{kind: nodeConst, num: d}
}

func term(head *node) *node {
	return &node{kind: nodeTerm, head: head}
}

// add appends an operation to a term.
func (n *node) add(op Operator, rhs *node) {
	n.ops = append(n.ops, op)
	n.terms = append(n.terms, rhs)
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeConst:
		b.WriteString(n.num.String())
	case nodeTerm:
		l, r := byte('('), byte(')')
		if n.synthetic {
			l, r = '{', '}'
		}
		b.WriteByte(l)
		n.fmtterm(b)
		b.WriteByte(r)
	case nodeUnary, nodeBinary, nodeTernary:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, arg := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			// The argument list already brackets each argument.
			if arg.kind == nodeTerm && !arg.synthetic {
				arg.fmtterm(b)
			} else {
				arg.fmt(b)
			}
		}
		b.WriteByte(')')
	default:
		panic("calculator: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// fmtterm writes the contents of a term without brackets.
func (n *node) fmtterm(b *strings.Builder) {
	n.head.fmt(b)
	for i, op := range n.ops {
		b.WriteByte(' ')
		b.WriteByte(op.Symbol())
		b.WriteByte(' ')
		n.terms[i].fmt(b)
	}
}

// restructure returns a copy of the tree rooted at n in which no term mixes
// precedence tiers. Each term keeps only operators of the lowest tier it
// contains; every run of tighter operators moves into a synthetic term rooted
// at the operand preceding the run. Synthetic terms are restructured in turn,
// so a term mixing all three tiers becomes three levels deep.
func restructure(n *node) *node {
	switch n.kind {
	case nodeConst:
		return n
	case nodeTerm:
		return restructureTerm(n)
	case nodeUnary, nodeBinary, nodeTernary:
		m := *n
		m.args = make([]*node, len(n.args))
		for i, arg := range n.args {
			m.args[i] = restructure(arg)
		}
		return &m
	default:
		panic("calculator: invalid node kind " + n.kind.String())
	}
}

func restructureTerm(n *node) *node {
	lowest, mixed := tiers(n.ops)
	m := &node{kind: nodeTerm, synthetic: n.synthetic, head: n.head}
	if !mixed {
		m.ops = append([]Operator(nil), n.ops...)
		m.terms = append([]*node(nil), n.terms...)
	} else {
		// sub is the synthetic term collecting the current run of tighter
		// operators, or nil between runs.
		var sub *node
		for i, op := range n.ops {
			if op.Precedence() == lowest {
				sub = nil
				m.add(op, n.terms[i])
				continue
			}
			if sub == nil {
				if len(m.terms) == 0 {
					sub = &node{kind: nodeTerm, synthetic: true, head: m.head}
					m.head = sub
				} else {
					k := len(m.terms) - 1
					sub = &node{kind: nodeTerm, synthetic: true, head: m.terms[k]}
					m.terms[k] = sub
				}
			}
			sub.add(op, n.terms[i])
		}
	}
	m.head = restructure(m.head)
	for i, t := range m.terms {
		m.terms[i] = restructure(t)
	}
	return m
}

// tiers finds the lowest precedence among ops and whether any operator has a
// different precedence.
func tiers(ops []Operator) (lowest int, mixed bool) {
	if len(ops) == 0 {
		return 0, false
	}
	lowest = ops[0].Precedence()
	for _, op := range ops[1:] {
		p := op.Precedence()
		if p != lowest {
			mixed = true
			if p < lowest {
				lowest = p
			}
		}
	}
	return lowest, mixed
}
