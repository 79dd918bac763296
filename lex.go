package arith

import (
	"errors"
	"io"
	"strconv"

	"github.com/rs/zerolog"
)

// Token is a lexical unit produced by a Lexer.
type Token struct {
	Kind TokenKind
	// Pos is the 1-based byte offset of the first byte of the token.
	Pos int
	// Val is the value of a TokenLiteral.
	Val Value
	// Char is the byte of a TokenUnrecognized.
	Char byte
	// Err is the *LiteralError of a TokenMalformed.
	Err error
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.text() + "@" + strconv.Itoa(t.Pos)
}

// text is the source text the token stands for, or the empty string at EOF.
func (t Token) text() string {
	switch t.Kind {
	case TokenLiteral:
		return t.Val.String()
	case TokenUnrecognized:
		return string([]byte{t.Char})
	case TokenMalformed:
		var lerr *LiteralError
		if errors.As(t.Err, &lerr) {
			return lerr.Text
		}
		return ""
	default:
		return t.Kind.symbol()
	}
}

// TokenKind identifies the kind of a Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenLParen
	TokenRParen
	// TokenLiteral is an integer or float literal.
	TokenLiteral
	// TokenUnrecognized is a byte that starts no token.
	TokenUnrecognized
	// TokenMalformed is a numeric literal that failed to parse. The same
	// error is in the lexer's error log.
	TokenMalformed
)

var tokenNames = [...]string{
	tokenNone:         "None",
	TokenEOF:          "EOF",
	TokenPlus:         "Plus",
	TokenMinus:        "Minus",
	TokenStar:         "Star",
	TokenSlash:        "Slash",
	TokenCaret:        "Caret",
	TokenLParen:       "LParen",
	TokenRParen:       "RParen",
	TokenLiteral:      "Literal",
	TokenUnrecognized: "Unrecognized",
	TokenMalformed:    "Malformed",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// symbol is the fixed text of operator and parenthesis tokens.
func (k TokenKind) symbol() string {
	switch k {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenCaret:
		return "^"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return ""
	}
}

// Lexer splits a byte stream into tokens. It reads its source in blocks and
// never holds more than one block of input. Malformed literals and
// unrecognized bytes do not stop lexing; malformed literals are also recorded
// in a log available from Errors.
//
// A Lexer is not safe for concurrent use.
type Lexer struct {
	src     *blockReader
	log     zerolog.Logger
	lenient bool
	errs    []error
	lit     []byte
	err     error
}

// NewLexer creates a lexer reading from src. Only the lexing options
// (BlockSize, Lenient, LogTo) affect it.
func NewLexer(src io.Reader, opts ...ParseOption) *Lexer {
	p := newParsectx(opts)
	return p.lexer(src)
}

// Next scans the next token. Once the input is exhausted, Next returns a
// TokenEOF token on every call. An error from the source is returned as an
// *IOError, and every later call returns the same error.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	for {
		pos := l.src.off + 1
		c, ok := l.src.next()
		if !ok {
			if l.src.err != nil {
				l.err = &IOError{Err: l.src.err}
				l.log.Debug().Err(l.src.err).Int("col", pos).Msg("read failed")
				return Token{}, l.err
			}
			return Token{Kind: TokenEOF, Pos: pos}, nil
		}
		var k TokenKind
		switch c {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			continue
		case '+':
			k = TokenPlus
		case '-':
			k = TokenMinus
		case '*':
			k = TokenStar
		case '/':
			k = TokenSlash
		case '^':
			k = TokenCaret
		case '(':
			k = TokenLParen
		case ')':
			k = TokenRParen
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.':
			tok, ok := l.scanLiteral(c, pos)
			if !ok {
				continue
			}
			return tok, nil
		default:
			return l.unrecognized(c, pos), nil
		}
		return Token{Kind: k, Pos: pos}, nil
	}
}

// Errors returns the malformed literals seen so far.
func (l *Lexer) Errors() []error {
	return append(([]error)(nil), l.errs...)
}

func (l *Lexer) unrecognized(c byte, pos int) Token {
	l.log.Debug().Int("col", pos).Str("char", strconv.Quote(string([]byte{c}))).Msg("unrecognized character")
	return Token{Kind: TokenUnrecognized, Pos: pos, Char: c}
}

// scanLiteral collects a numeric literal starting with first. The result is
// false if the literal was malformed and the lexer is lenient, in which case
// there is no token to return.
func (l *Lexer) scanLiteral(first byte, pos int) (Token, bool) {
	l.lit = append(l.lit[:0], first)
	for {
		c, ok := l.src.peek()
		if !ok || !isLiteralByte(c) {
			break
		}
		l.src.next()
		l.lit = append(l.lit, c)
	}
	if len(l.lit) == 1 && first == '.' {
		return l.unrecognized(first, pos), true
	}
	text := string(l.lit)
	var lerr *LiteralError
	switch dots := countDots(l.lit); dots {
	case 0:
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return Token{Kind: TokenLiteral, Pos: pos, Val: Int(n)}, true
		}
		lerr = &LiteralError{Col: pos, Text: text, Kind: "integer", Err: err}
	case 1:
		f, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return Token{Kind: TokenLiteral, Pos: pos, Val: Float(f)}, true
		}
		lerr = &LiteralError{Col: pos, Text: text, Kind: "float", Err: err}
	default:
		lerr = &LiteralError{Col: pos, Text: text, Kind: "float", Err: ErrExtraPoint}
	}
	l.errs = append(l.errs, lerr)
	l.log.Debug().Err(lerr.Err).Int("col", pos).Str("text", text).Str("kind", lerr.Kind).Msg("malformed literal")
	if l.lenient {
		return Token{}, false
	}
	return Token{Kind: TokenMalformed, Pos: pos, Err: lerr}, true
}

func isLiteralByte(c byte) bool {
	return '0' <= c && c <= '9' || c == '.'
}

func countDots(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '.' {
			n++
		}
	}
	return n
}

// Tokens lexes all of src. The tokens do not include the final TokenEOF. log
// is the lexer's error log; err is non-nil only if reading src failed.
func Tokens(src io.Reader, opts ...ParseOption) (toks []Token, log []error, err error) {
	l := NewLexer(src, opts...)
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, l.Errors(), err
		}
		if tok.Kind == TokenEOF {
			return toks, l.Errors(), nil
		}
		toks = append(toks, tok)
	}
}

var (
	// ErrExtraPoint is the reason for a float literal with more than one
	// decimal point, e.g. "3..4".
	ErrExtraPoint = errors.New("more than one decimal point")
	// ErrMalformed is the reason given for a TokenMalformed from a
	// TokenSource that did not attach an error.
	ErrMalformed = errors.New("malformed literal")
)

// LiteralError indicates a numeric literal that could not be parsed. It
// implements SyntaxError.
type LiteralError struct {
	// Col is the position of the start of the literal.
	Col int
	// Text is the literal as written.
	Text string
	// Kind is "integer" for literals without a decimal point and "float"
	// otherwise.
	Kind string
	// Err is the reason the literal is invalid, either ErrExtraPoint or a
	// *strconv.NumError.
	Err error
}

func (err *LiteralError) Error() string {
	reason := err.Err.Error()
	var nerr *strconv.NumError
	if errors.As(err.Err, &nerr) {
		reason = nerr.Err.Error()
	}
	return errpos(err.Col, "invalid "+err.Kind+" literal "+strconv.Quote(err.Text)+": "+reason)
}

func (err *LiteralError) Unwrap() error {
	return err.Err
}

func (err *LiteralError) Pos() int {
	return err.Col
}

// UnrecognizedError indicates a byte that begins no token. It implements
// SyntaxError.
type UnrecognizedError struct {
	// Col is the position of the byte.
	Col int
	// Char is the unrecognized byte.
	Char byte
}

func (err *UnrecognizedError) Error() string {
	return errpos(err.Col, "unrecognized character "+strconv.Quote(string([]byte{err.Char})))
}

func (err *UnrecognizedError) Pos() int {
	return err.Col
}

// IOError wraps an error from the input source. Unlike syntax errors, it ends
// lexing.
type IOError struct {
	Err error
}

func (err *IOError) Error() string {
	return "reading input: " + err.Err.Error()
}

func (err *IOError) Unwrap() error {
	return err.Err
}
