package calculator

import (
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	f.Add("1 + 2 * 3 ^ 4")
	f.Add("one(two(1, 2), )")
	f.Add("((1)")
	f.Add("-+-three(1, 2, 3)")
	f.Add("1e-5")
	calc := testCalculator(MaxDepth(64))
	f.Fuzz(func(t *testing.T, s string) {
		e, err := calc.ParseString(s)
		if err != nil {
			if e != nil {
				t.Errorf("%q gave both %v and %v", s, e, err)
			}
			var ierr InputError
			if !errors.Is(err, ErrEmptyInput) && !errors.As(err, &ierr) {
				t.Errorf("%q gave non-input error %v", s, err)
			}
			return
		}
		// Rendering and restructuring again must agree.
		if got, want := restructure(e.n).String(), e.String(); got != want {
			t.Errorf("%q restructures from %s to %s", s, want, got)
		}
	})
}
