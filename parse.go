package arith

import (
	"io"
	"strings"
)

// expr   = term { ('+' | '-') term }
// term   = factor { ('*' | '/' | '^') factor }
// factor = literal | '(' expr ')' | '-' factor

// TokenSource supplies tokens to a Parser. *Lexer is a TokenSource.
type TokenSource interface {
	// Next returns the next token. After the input is exhausted, it returns
	// a TokenEOF token on every call.
	Next() (Token, error)
}

// Parser builds expressions from a token stream by recursive descent.
type Parser struct {
	src TokenSource
	// p is a pushed token, the parser's one token of lookahead.
	p   Token
	ctx parsectx

	// seen is set once any token other than EOF has been read.
	seen bool
}

// NewParser creates a parser reading tokens from src. Lexing options have no
// effect on a Parser.
func NewParser(src TokenSource, opts ...ParseOption) *Parser {
	return &Parser{src: src, ctx: newParsectx(opts)}
}

// Parse parses a complete expression from src. It is an error for any input
// other than whitespace to follow the expression. If a lenient parse fails
// after malformed literals were dropped, the error is a *LexLogError.
func Parse(src io.Reader, opts ...ParseOption) (*Expr, error) {
	p := newParsectx(opts)
	lex := p.lexer(src)
	parser := Parser{src: lex, ctx: p}
	e, err := parser.Expr()
	if err == nil {
		err = parser.End()
	}
	if err != nil {
		if log := lex.Errors(); p.lenient && len(log) != 0 {
			return nil, &LexLogError{Err: err, Log: log}
		}
		return nil, err
	}
	e.lexerrs = lex.Errors()
	return e, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// Expr parses one expression. The token following the expression remains
// unconsumed, so callers can decide what may follow it.
func (p *Parser) Expr() (*Expr, error) {
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &Expr{n: n}, nil
}

// End checks that the token source is exhausted. If it is not, the error
// describes the first leftover token.
func (p *Parser) End() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case TokenEOF:
		p.push(tok)
		return nil
	case TokenUnrecognized:
		return &UnrecognizedError{Col: tok.Pos, Char: tok.Char}
	case TokenMalformed:
		return malformed(tok)
	default:
		return &TrailingError{Col: tok.Pos, Found: tok.text()}
	}
}

// push unreads a token so that it is the next token returned from next.
// Panics if there is already a pushed token.
func (p *Parser) push(tok Token) {
	if p.p.Kind != tokenNone {
		panic("arith: double push")
	}
	p.p = tok
}

func (p *Parser) next() (Token, error) {
	if p.p.Kind != tokenNone {
		tok := p.p
		p.p = Token{}
		return tok, nil
	}
	tok, err := p.src.Next()
	if err == nil && tok.Kind != TokenEOF {
		p.seen = true
	}
	return tok, err
}

func (p *Parser) expr() (*node, error) {
	return p.chain(p.term, isAdditive, p.expr)
}

func (p *Parser) term() (*node, error) {
	return p.chain(p.factor, isMultiplicative, p.term)
}

// chain parses operand { op operand } where match selects the operators. With
// left associativity the nodes fold as they are parsed. With right
// associativity the right-hand side of the first operator is parsed by self,
// which is the rule calling chain.
func (p *Parser) chain(operand func() (*node, error), match func(TokenKind) bool, self func() (*node, error)) (*node, error) {
	n, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !match(tok.Kind) {
			p.push(tok)
			return n, nil
		}
		op := binop(tok)
		if p.ctx.right {
			rhs, err := self()
			if err != nil {
				return nil, err
			}
			return &node{kind: op, left: n, right: rhs}, nil
		}
		rhs, err := operand()
		if err != nil {
			return nil, err
		}
		n = &node{kind: op, left: n, right: rhs}
	}
}

func (p *Parser) factor() (*node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenLiteral:
		return &node{kind: nodeLit, val: tok.Val}, nil
	case TokenLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		end, err := p.next()
		if err != nil {
			return nil, err
		}
		if end.Kind != TokenRParen {
			return nil, &ParenError{Open: tok.Pos, Col: end.Pos, Found: end.text()}
		}
		return &node{kind: nodeGroup, left: n}, nil
	case TokenMinus:
		// Negation takes a factor, not an expression, so -2^2 is (-2)^2.
		n, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNeg, left: n}, nil
	case TokenUnrecognized:
		return nil, &UnrecognizedError{Col: tok.Pos, Char: tok.Char}
	case TokenMalformed:
		return nil, malformed(tok)
	case TokenEOF, TokenPlus, TokenStar, TokenSlash, TokenCaret, TokenRParen:
		return nil, &OperandError{Col: tok.Pos, Found: tok.text(), Empty: !p.seen}
	default:
		panic("arith: unknown token: " + tok.String())
	}
}

// malformed returns the error carried by a TokenMalformed.
func malformed(tok Token) error {
	if tok.Err == nil {
		return &LiteralError{Col: tok.Pos, Kind: "number", Err: ErrMalformed}
	}
	return tok.Err
}

func isAdditive(k TokenKind) bool {
	return k == TokenPlus || k == TokenMinus
}

func isMultiplicative(k TokenKind) bool {
	return k == TokenStar || k == TokenSlash || k == TokenCaret
}
