package arith

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node owns
// its children.
type node struct {
	kind nodeKind

	val Value

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeLit // val

	nodeNeg   // evaluate left, then negate
	nodeGroup // evaluate left; parentheses kept for display

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
)

var nodeNames = [...]string{
	nodeNone:  "None",
	nodeLit:   "Lit",
	nodeNeg:   "Neg",
	nodeGroup: "Group",
	nodeAdd:   "Add",
	nodeSub:   "Sub",
	nodeMul:   "Mul",
	nodeDiv:   "Div",
	nodePow:   "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

// symbol is the operator text of a negation or binary node.
func (k nodeKind) symbol() string {
	switch k {
	case nodeNeg, nodeSub:
		return "-"
	case nodeAdd:
		return "+"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodePow:
		return "^"
	default:
		return ""
	}
}

// binop gets the binary operator for an operator token. Any other token is a
// parser bug.
func binop(tok Token) nodeKind {
	switch tok.Kind {
	case TokenPlus:
		return nodeAdd
	case TokenMinus:
		return nodeSub
	case TokenStar:
		return nodeMul
	case TokenSlash:
		return nodeDiv
	case TokenCaret:
		return nodePow
	default:
		panic("arith: no binary operator for token " + tok.String())
	}
}

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// lexerrs is the lexer's error log from a lenient parse.
	lexerrs []error
}

// String renders the expression in infix form. Parentheses appear exactly
// where the source had them, so parsing the result with the same options
// gives an expression with the same value.
func (e *Expr) String() string {
	return e.n.String()
}

// Tree renders the expression as an S-expression, e.g. "(+ 1 (* 2 3))".
func (e *Expr) Tree() string {
	var b strings.Builder
	e.n.tree(&b)
	return b.String()
}

// LexErrors returns the malformed literals the lexer dropped while parsing
// the expression. It is empty unless the expression was parsed with Lenient.
func (e *Expr) LexErrors() []error {
	return append(([]error)(nil), e.lexerrs...)
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeLit:
		if n.val.negative() {
			b.WriteByte('(')
			b.WriteString(n.val.String())
			b.WriteByte(')')
			return
		}
		b.WriteString(n.val.String())
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeGroup:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.kind.symbol())
		b.WriteByte(' ')
		n.right.fmt(b)
	default:
		panic("arith: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) tree(b *strings.Builder) {
	switch n.kind {
	case nodeLit:
		b.WriteString(n.val.String())
	case nodeNeg:
		b.WriteString("(- ")
		n.left.tree(b)
		b.WriteByte(')')
	case nodeGroup:
		b.WriteString("(group ")
		n.left.tree(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		b.WriteByte('(')
		b.WriteString(n.kind.symbol())
		b.WriteByte(' ')
		n.left.tree(b)
		b.WriteByte(' ')
		n.right.tree(b)
		b.WriteByte(')')
	default:
		panic("arith: invalid node kind " + n.kind.String())
	}
}
