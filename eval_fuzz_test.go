package calculator_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/calculator"
)

func FuzzCalculate(f *testing.F) {
	f.Add("1 + 2 * 3")
	f.Add("-(2 ^ 0.5) / 0")
	f.Add("IF(1, RounD(Sin(5), 2), 0)")
	f.Add("exp(ln(2) * 3)")
	f.Add("round(1, 1e9999)")
	calc := calculator.New(calculator.Scale(4), calculator.MaxDepth(64))
	f.Fuzz(func(t *testing.T, s string) {
		r := calc.Calculate(s)
		if r == "" {
			return
		}
		if strings.HasPrefix(r, "#") {
			return
		}
		// Successful results are plain decimals.
		if strings.ContainsAny(r, "eE") {
			t.Errorf("%q gave %q", s, r)
		}
	})
}
