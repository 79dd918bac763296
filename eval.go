package arith

import (
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultPrec is the default working precision in bits for floating-point
// exponentiation.
const DefaultPrec = 64

// Context is a context for evaluating expressions. A Context holds only
// configuration, so it is safe to use one Context concurrently.
type Context struct {
	prec uint
	log  zerolog.Logger
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the working precision in bits used to compute powers with a
// float operand and a positive base. The result is rounded twice, first to
// prec bits and then to a float64, so it may differ from math.Pow in the last
// place. A precision of 0 uses math.Pow directly.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: DefaultPrec, log: zerolog.Nop()}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := *ctx
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case precopt:
			n.prec = uint(opt)
		case *logopt:
			n.log = opt.log
		default:
			panic("arith: unknown option type")
		}
	}
	return &n
}

// Prec returns the precision used for floating-point exponentiation.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates an expression. Evaluation stops at the first arithmetic
// failure, which is returned as an *ArithmeticError.
func (ctx *Context) Eval(e *Expr) (Value, error) {
	v, err := e.n.eval(ctx)
	if err != nil {
		ctx.log.Debug().Err(err).Str("expr", e.String()).Msg("evaluation failed")
		return Value{}, err
	}
	return v, nil
}

var defaultContext = NewContext()

// Eval evaluates the expression with a default context.
func (e *Expr) Eval() (Value, error) {
	return defaultContext.Eval(e)
}

// eval computes the node's value. Both operands of a binary node are
// evaluated, left first, before the operator applies.
func (n *node) eval(ctx *Context) (Value, error) {
	switch n.kind {
	case nodeLit:
		return n.val, nil
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		return v.Neg()
	case nodeGroup:
		return n.left.eval(ctx)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		return apply(n.kind, l, r, ctx.prec)
	default:
		panic("arith: invalid AST node " + n.kind.String())
	}
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.Reader, opts ...ContextOption) (Value, error) {
	a, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return NewContext(opts...).Eval(a)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (Value, error) {
	return Eval(strings.NewReader(src), opts...)
}

var (
	// ErrDivideByZero is the reason for a division by zero, including a zero
	// base raised to a negative power.
	ErrDivideByZero = errors.New("division by zero")
	// ErrOverflow is the reason for a result that does not fit its kind: an
	// int64 overflow or an infinite float.
	ErrOverflow = errors.New("overflow")
	// ErrNegativeExponent is the reason for an integer raised to a negative
	// integer power.
	ErrNegativeExponent = errors.New("negative exponent in integer power")
	// ErrDomain is the reason for a result that is not a number, such as a
	// negative float raised to a fractional power.
	ErrDomain = errors.New("result is not a number")
)

// ArithmeticError is an error from applying an operator to values it cannot
// combine. It unwraps to one of ErrDivideByZero, ErrOverflow,
// ErrNegativeExponent, or ErrDomain.
type ArithmeticError struct {
	// Op is the operator symbol.
	Op string
	// L and R are the operands. R is unused for unary operators.
	L, R Value
	// Unary is whether the operator is negation.
	Unary bool
	// Err is the reason the operation failed.
	Err error
}

func (err *ArithmeticError) Error() string {
	if err.Unary {
		return "cannot evaluate " + err.Op + err.L.String() + ": " + err.Err.Error()
	}
	return "cannot evaluate " + err.L.String() + " " + err.Op + " " + err.R.String() + ": " + err.Err.Error()
}

func (err *ArithmeticError) Unwrap() error {
	return err.Err
}
