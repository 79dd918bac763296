package arith

import (
	"io"

	"github.com/rs/zerolog"
)

// ParseOption is an option for lexing and parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	assocopt   bool
	lenientopt bool
	blockopt   int
)

// parsectx holds general data for lexing and parsing. It is also a
// ParseOption.
type parsectx struct {
	// right selects right-associative grouping of same-precedence operators.
	right bool
	// lenient drops malformed literals from the token stream instead of
	// surfacing them as TokenMalformed.
	lenient bool
	// block is the lexer's read size.
	block int
	log   zerolog.Logger
	// set indicates that some option has been applied.
	set bool
}

func newParsectx(opts []ParseOption) parsectx {
	p := parsectx{block: DefaultBlockSize, log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			p = opt.parseOption(p)
		}
	}
	return p
}

func (p *parsectx) lexer(src io.Reader) *Lexer {
	return &Lexer{
		src:     newBlockReader(src, p.block),
		log:     p.log,
		lenient: p.lenient,
	}
}

// RightAssociative makes chains of operators with the same precedence group
// to the right, so that "8 - 4 - 2" is "8 - (4 - 2)". By default they group
// to the left.
func RightAssociative() ParseOption {
	return assocopt(true)
}

func (o assocopt) parseOption(p parsectx) parsectx {
	p.right = bool(o)
	p.set = true
	return p
}

// Lenient tells the lexer to drop malformed literals from the token stream.
// They are still recorded in the lexer's error log, and Parse makes them
// available through Expr.LexErrors. By default a malformed literal becomes a
// TokenMalformed, which the parser reports as an error.
func Lenient() ParseOption {
	return lenientopt(true)
}

func (o lenientopt) parseOption(p parsectx) parsectx {
	p.lenient = bool(o)
	p.set = true
	return p
}

// BlockSize sets the number of bytes the lexer requests per read. Sizes less
// than 1 select DefaultBlockSize.
func BlockSize(n int) ParseOption {
	return blockopt(n)
}

func (o blockopt) parseOption(p parsectx) parsectx {
	p.block = int(o)
	if p.block < 1 {
		p.block = DefaultBlockSize
	}
	p.set = true
	return p
}

// LogOption is an option that applies to both parsing and evaluation.
type LogOption interface {
	ParseOption
	ContextOption
}

type logopt struct {
	log zerolog.Logger
}

// LogTo sends debug events from lexing or evaluation to log. By default
// nothing is logged.
func LogTo(log zerolog.Logger) LogOption {
	return &logopt{log: log}
}

func (o *logopt) parseOption(p parsectx) parsectx {
	p.log = o.log
	p.set = true
	return p
}

func (*logopt) ctxOption() {}

// ParsingPreset combines options into one which may be reused for many calls
// to Parse. A preset panics when applied after any other option, but it is
// safe to apply other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := newParsectx(opts)
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.set {
		panic("arith: preset applied to non-default parse config")
	}
	r := *o
	r.set = true
	return r
}
