package arith_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arith"
)

func TestValueArithmetic(t *testing.T) {
	type op func(v, w arith.Value) (arith.Value, error)
	var (
		add op = arith.Value.Add
		sub op = arith.Value.Sub
		mul op = arith.Value.Mul
		quo op = arith.Value.Quo
		pow op = arith.Value.Pow
	)
	cases := []struct {
		name string
		op   op
		v, w arith.Value
		want arith.Value
	}{
		{"add-int", add, arith.Int(2), arith.Int(3), arith.Int(5)},
		{"add-float", add, arith.Float(2), arith.Int(3), arith.Float(5)},
		{"add-max", add, arith.Int(math.MaxInt64 - 1), arith.Int(1), arith.Int(math.MaxInt64)},
		{"sub-int", sub, arith.Int(2), arith.Int(3), arith.Int(-1)},
		{"sub-float", sub, arith.Int(10), arith.Float(2.5), arith.Float(7.5)},
		{"sub-min", sub, arith.Int(math.MinInt64 + 1), arith.Int(1), arith.Int(math.MinInt64)},
		{"mul-int", mul, arith.Int(6), arith.Int(7), arith.Int(42)},
		{"mul-float", mul, arith.Float(1.5), arith.Int(2), arith.Float(3)},
		{"mul-zero-min", mul, arith.Int(0), arith.Int(math.MinInt64), arith.Int(0)},
		{"mul-neg", mul, arith.Int(-3), arith.Int(4), arith.Int(-12)},
		{"quo-exact", quo, arith.Int(4), arith.Int(2), arith.Float(2)},
		{"quo-inexact", quo, arith.Int(7), arith.Int(2), arith.Float(3.5)},
		{"quo-float", quo, arith.Float(1), arith.Int(4), arith.Float(0.25)},
		{"pow-int", pow, arith.Int(2), arith.Int(10), arith.Int(1024)},
		{"pow-zero", pow, arith.Int(0), arith.Int(0), arith.Int(1)},
		{"pow-one", pow, arith.Int(-1), arith.Int(math.MaxInt64), arith.Int(-1)},
		{"pow-min", pow, arith.Int(-2), arith.Int(63), arith.Int(math.MinInt64)},
		{"pow-float-int", pow, arith.Float(2), arith.Int(-1), arith.Float(0.5)},
		{"pow-int-float", pow, arith.Int(4), arith.Float(0.5), arith.Float(2)},
		{"pow-neg-base", pow, arith.Float(-2), arith.Int(3), arith.Float(-8)},
		{"pow-float-zero", pow, arith.Float(2), arith.Int(0), arith.Float(1)},
		{"pow-float-one", pow, arith.Float(2.5), arith.Int(1), arith.Float(2.5)},
		{"pow-int-float-one", pow, arith.Int(5), arith.Float(1), arith.Float(5)},
		{"pow-float-float-zero", pow, arith.Float(3), arith.Float(0), arith.Float(1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.op(c.v, c.w)
			require.NoError(t, err)
			assert.Equal(t, c.want.Kind(), got.Kind())
			if c.want.Kind() == arith.FloatKind {
				assert.InDelta(t, c.want.Float64(), got.Float64(), 1e-15)
				return
			}
			assert.Equal(t, c.want, got)
		})
	}
}

func TestValueArithmeticErrors(t *testing.T) {
	type op func(v, w arith.Value) (arith.Value, error)
	var (
		add op = arith.Value.Add
		sub op = arith.Value.Sub
		mul op = arith.Value.Mul
		quo op = arith.Value.Quo
		pow op = arith.Value.Pow
	)
	cases := []struct {
		name string
		op   op
		sym  string
		v, w arith.Value
		err  error
	}{
		{"add-overflow", add, "+", arith.Int(math.MaxInt64), arith.Int(1), arith.ErrOverflow},
		{"add-inf", add, "+", arith.Float(math.MaxFloat64), arith.Float(math.MaxFloat64), arith.ErrOverflow},
		{"sub-overflow", sub, "-", arith.Int(math.MinInt64), arith.Int(1), arith.ErrOverflow},
		{"mul-overflow", mul, "*", arith.Int(1 << 32), arith.Int(1 << 32), arith.ErrOverflow},
		{"mul-min", mul, "*", arith.Int(math.MinInt64), arith.Int(-1), arith.ErrOverflow},
		{"mul-inf", mul, "*", arith.Float(1e300), arith.Float(1e300), arith.ErrOverflow},
		{"quo-int-zero", quo, "/", arith.Int(1), arith.Int(0), arith.ErrDivideByZero},
		{"quo-float-zero", quo, "/", arith.Float(1), arith.Float(0), arith.ErrDivideByZero},
		{"quo-zero-zero", quo, "/", arith.Int(0), arith.Float(0), arith.ErrDivideByZero},
		{"pow-overflow", pow, "^", arith.Int(2), arith.Int(63), arith.ErrOverflow},
		{"pow-neg-exp", pow, "^", arith.Int(2), arith.Int(-1), arith.ErrNegativeExponent},
		{"pow-zero-neg", pow, "^", arith.Float(0), arith.Int(-1), arith.ErrDivideByZero},
		{"pow-domain", pow, "^", arith.Float(-8), arith.Float(1.0 / 3), arith.ErrDomain},
		{"pow-inf", pow, "^", arith.Float(10), arith.Float(400), arith.ErrOverflow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.op(c.v, c.w)
			require.Error(t, err)
			assert.ErrorIs(t, err, c.err)
			var aerr *arith.ArithmeticError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, c.sym, aerr.Op)
			assert.Equal(t, c.v, aerr.L)
			assert.Equal(t, c.w, aerr.R)
			assert.False(t, aerr.Unary)
		})
	}
}

func TestValueNeg(t *testing.T) {
	v, err := arith.Int(5).Neg()
	require.NoError(t, err)
	assert.Equal(t, arith.Int(-5), v)

	v, err = arith.Float(2.5).Neg()
	require.NoError(t, err)
	assert.Equal(t, arith.Float(-2.5), v)

	_, err = arith.Int(math.MinInt64).Neg()
	assert.ErrorIs(t, err, arith.ErrOverflow)
	var aerr *arith.ArithmeticError
	require.ErrorAs(t, err, &aerr)
	assert.True(t, aerr.Unary)
	assert.Equal(t, "cannot evaluate -"+fmt.Sprint(int64(math.MinInt64))+": overflow", aerr.Error())
}

func TestValueAccessors(t *testing.T) {
	n, ok := arith.Int(7).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)
	_, ok = arith.Float(7).Int64()
	assert.False(t, ok)
	assert.Equal(t, 7.0, arith.Int(7).Float64())
	assert.Equal(t, arith.IntKind, arith.Value{}.Kind())
	assert.Equal(t, "Int", arith.IntKind.String())
	assert.Equal(t, "Float", arith.FloatKind.String())
}

func TestValueFormat(t *testing.T) {
	cases := []struct {
		format string
		v      arith.Value
		want   string
	}{
		{"%v", arith.Int(2), "2"},
		{"%v", arith.Float(2), "2.0"},
		{"%v", arith.Float(2.5), "2.5"},
		{"%v", arith.Float(-0.125), "-0.125"},
		{"%v", arith.Float(1e21), "1000000000000000000000.0"},
		{"%s", arith.Int(-3), "-3"},
		{"%5v", arith.Int(7), "    7"},
		{"%-5v|", arith.Float(1), "1.0  |"},
		{"%d", arith.Int(42), "42"},
		{"%x", arith.Int(255), "ff"},
		{"%.3f", arith.Float(1.5), "1.500"},
		{"%e", arith.Float(1000), "1.000000e+03"},
		{"%g", arith.Float(0.5), "0.5"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, fmt.Sprintf(c.format, c.v), "format %s of %#v", c.format, c.v)
	}
}
