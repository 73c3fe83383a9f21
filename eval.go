package calculator

import "github.com/shopspring/decimal"

// eval computes the value of the tree rooted at n.
func (n *node) eval(scale int32) (decimal.Decimal, error) {
	switch n.kind {
	case nodeConst:
		return n.num, nil
	case nodeTerm:
		r, err := n.head.eval(scale)
		if err != nil {
			return decimal.Zero, err
		}
		for i, op := range n.ops {
			v, err := n.terms[i].eval(scale)
			if err != nil {
				return decimal.Zero, err
			}
			r, err = op.Apply(r, v, scale)
			if err != nil {
				return decimal.Zero, err
			}
		}
		return r, nil
	case nodeUnary, nodeBinary, nodeTernary:
		return n.fn.call(n.args, scale)
	default:
		panic("calculator: invalid AST node " + n.kind.String())
	}
}

// Eval evaluates the expression. Inexact operations keep at most scale
// fractional digits.
func (e *Expr) Eval(scale int32) (decimal.Decimal, error) {
	return e.n.eval(scale)
}

// Eval evaluates an expression at the calculator's current scale.
func (c *Calculator) Eval(e *Expr) (decimal.Decimal, error) {
	return e.Eval(c.Scale())
}
