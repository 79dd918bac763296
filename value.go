package arith

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// ValueKind distinguishes the two kinds of numeric values.
type ValueKind int8

const (
	// IntKind is a signed 64-bit integer.
	IntKind ValueKind = iota
	// FloatKind is a 64-bit IEEE 754 float.
	FloatKind
)

func (k ValueKind) String() string {
	switch k {
	case IntKind:
		return "Int"
	case FloatKind:
		return "Float"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a fully reduced numeric value, either an integer or a float. The
// zero Value is the integer 0. Values are immutable; arithmetic produces new
// Values. Values produced by this package are always finite.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
}

// Int returns an integer Value.
func Int(n int64) Value {
	return Value{kind: IntKind, i: n}
}

// Float returns a floating-point Value.
func Float(f float64) Value {
	return Value{kind: FloatKind, f: f}
}

// Kind returns the kind of v.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Int64 returns v's integer value. ok is false if v is a float.
func (v Value) Int64() (n int64, ok bool) {
	return v.i, v.kind == IntKind
}

// Float64 returns v as a float64, converting integers.
func (v Value) Float64() float64 {
	if v.kind == IntKind {
		return float64(v.i)
	}
	return v.f
}

// String formats v. Floats always include a decimal point, so Float(2) is
// "2.0" while Int(2) is "2".
func (v Value) String() string {
	if v.kind == IntKind {
		return strconv.FormatInt(v.i, 10)
	}
	return formatFloat(v.f)
}

// Format implements fmt.Formatter. %v and %s use String; other verbs format
// the underlying int64 or float64.
func (v Value) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' || verb == 's':
		fmt.Fprintf(s, fmt.FormatString(s, 's'), v.String())
	case v.kind == IntKind:
		fmt.Fprintf(s, fmt.FormatString(s, verb), v.i)
	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), v.f)
	}
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// negative reports whether v is below zero, including negative zero.
func (v Value) negative() bool {
	if v.kind == IntKind {
		return v.i < 0
	}
	return math.Signbit(v.f)
}

func (v Value) zero() bool {
	if v.kind == IntKind {
		return v.i == 0
	}
	return v.f == 0
}

// Neg returns -v. Negating the smallest int64 overflows.
func (v Value) Neg() (Value, error) {
	if v.kind == FloatKind {
		return Float(-v.f), nil
	}
	if v.i == math.MinInt64 {
		return Value{}, &ArithmeticError{Op: "-", L: v, Unary: true, Err: ErrOverflow}
	}
	return Int(-v.i), nil
}

// Add returns v + w. The result is an integer if both operands are.
func (v Value) Add(w Value) (Value, error) {
	return apply(nodeAdd, v, w, DefaultPrec)
}

// Sub returns v - w. The result is an integer if both operands are.
func (v Value) Sub(w Value) (Value, error) {
	return apply(nodeSub, v, w, DefaultPrec)
}

// Mul returns v * w. The result is an integer if both operands are.
func (v Value) Mul(w Value) (Value, error) {
	return apply(nodeMul, v, w, DefaultPrec)
}

// Quo returns v / w. The result is always a float, even for two integers that
// divide evenly.
func (v Value) Quo(w Value) (Value, error) {
	return apply(nodeDiv, v, w, DefaultPrec)
}

// Pow returns v ^ w. The result is an integer if both operands are, in which
// case w must not be negative.
func (v Value) Pow(w Value) (Value, error) {
	return apply(nodePow, v, w, DefaultPrec)
}

// apply evaluates a binary operator on two values. prec is the working
// precision for floating-point exponentiation.
func apply(op nodeKind, l, r Value, prec uint) (Value, error) {
	var (
		z   Value
		err error
	)
	switch op {
	case nodeAdd:
		z, err = add(l, r)
	case nodeSub:
		z, err = sub(l, r)
	case nodeMul:
		z, err = mul(l, r)
	case nodeDiv:
		z, err = quo(l, r)
	case nodePow:
		z, err = pow(l, r, prec)
	default:
		panic("arith: not a binary operator: " + op.String())
	}
	if err != nil {
		return Value{}, &ArithmeticError{Op: op.symbol(), L: l, R: r, Err: err}
	}
	return z, nil
}

func ints(l, r Value) bool {
	return l.kind == IntKind && r.kind == IntKind
}

// finite wraps a float result, rejecting overflow and NaN.
func finite(f float64) (Value, error) {
	switch {
	case math.IsNaN(f):
		return Value{}, ErrDomain
	case math.IsInf(f, 0):
		return Value{}, ErrOverflow
	}
	return Float(f), nil
}

func add(l, r Value) (Value, error) {
	if ints(l, r) {
		z := l.i + r.i
		if (z^l.i)&(z^r.i) < 0 {
			return Value{}, ErrOverflow
		}
		return Int(z), nil
	}
	return finite(l.Float64() + r.Float64())
}

func sub(l, r Value) (Value, error) {
	if ints(l, r) {
		z := l.i - r.i
		if (l.i^r.i)&(z^l.i) < 0 {
			return Value{}, ErrOverflow
		}
		return Int(z), nil
	}
	return finite(l.Float64() - r.Float64())
}

func mul(l, r Value) (Value, error) {
	if ints(l, r) {
		z, ok := mulInt(l.i, r.i)
		if !ok {
			return Value{}, ErrOverflow
		}
		return Int(z), nil
	}
	return finite(l.Float64() * r.Float64())
}

func quo(l, r Value) (Value, error) {
	if r.zero() {
		return Value{}, ErrDivideByZero
	}
	return finite(l.Float64() / r.Float64())
}

func pow(l, r Value, prec uint) (Value, error) {
	if ints(l, r) {
		return powInt(l.i, r.i)
	}
	x, y := l.Float64(), r.Float64()
	if x == 0 && y < 0 {
		return Value{}, ErrDivideByZero
	}
	return finite(powFloat(x, y, prec))
}

// mulInt multiplies two integers, reporting whether the product fits.
func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == -1 && b == math.MinInt64 || b == -1 && a == math.MinInt64 {
		return 0, false
	}
	z := a * b
	if z/b != a {
		return 0, false
	}
	return z, true
}

// powInt computes b^e by square-and-multiply. The base is squared only while
// bits of e remain, so every square computed contributes to the result.
func powInt(b, e int64) (Value, error) {
	if e < 0 {
		return Value{}, ErrNegativeExponent
	}
	z := int64(1)
	ok := true
	for e > 0 {
		if e&1 != 0 {
			if z, ok = mulInt(z, b); !ok {
				return Value{}, ErrOverflow
			}
		}
		e >>= 1
		if e > 0 {
			if b, ok = mulInt(b, b); !ok {
				return Value{}, ErrOverflow
			}
		}
	}
	return Int(z), nil
}

// powFloat computes x^y. For a positive finite base and nonzero precision, the
// power is computed with bigfloat at prec bits and rounded to float64.
func powFloat(x, y float64, prec uint) (z float64) {
	if prec == 0 || !(x > 0) || math.IsInf(x, 0) || math.IsInf(y, 0) || math.IsNaN(y) {
		return math.Pow(x, y)
	}
	// Past this magnitude the result is 0 or overflows float64 anyway.
	if math.Abs(y*math.Log2(x)) > 2048 {
		return math.Pow(x, y)
	}
	defer func() {
		if r := recover(); r != nil {
			z = math.Pow(x, y)
		}
	}()
	bx := new(big.Float).SetPrec(prec).SetFloat64(x)
	by := new(big.Float).SetPrec(prec).SetFloat64(y)
	// Pow may return a new value rather than its receiver.
	r := bigfloat.Pow(new(big.Float).SetPrec(prec), bx, by)
	z, _ = r.Float64()
	return z
}
