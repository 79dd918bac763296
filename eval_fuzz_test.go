//go:build go1.18
// +build go1.18

package arith_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/arith"
)

func FuzzEval(f *testing.F) {
	f.Add("1")
	f.Add("2^3^2")
	f.Add("7/2 - 0.5")
	f.Add("-(9223372036854775807 + 1)")
	f.Add("(-8)^(1/3)")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := arith.Parse(strings.NewReader(s))
		if err != nil {
			return
		}
		v, err := a.Eval()
		if err != nil {
			var aerr *arith.ArithmeticError
			if !errors.As(err, &aerr) {
				t.Errorf("%q gave non-arithmetic error %#v", s, err)
			}
			return
		}
		w, err := arith.EvalString(a.String())
		if err != nil {
			t.Fatalf("%q displays as %q, which fails: %v", s, a, err)
		}
		if v != w {
			t.Errorf("%q gave %v but its display %q gives %v", s, v, a, w)
		}
	})
}
