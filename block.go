package arith

import (
	"errors"
	"io"
)

// DefaultBlockSize is the number of bytes the lexer requests from its source
// per read unless BlockSize says otherwise.
const DefaultBlockSize = 512

// blockReader buffers a byte source in fixed-size blocks and hands out single
// bytes with one byte of lookahead.
type blockReader struct {
	src io.Reader
	buf []byte
	// buf[r:w] is the unread part of the current block.
	r, w int
	// off is the number of bytes handed out so far.
	off int
	// end is set by io.EOF or by a read of zero bytes. err is set by any
	// other read error. Either takes effect once the current block is
	// drained.
	end bool
	err error
}

func newBlockReader(src io.Reader, size int) *blockReader {
	if size < 1 {
		size = DefaultBlockSize
	}
	return &blockReader{src: src, buf: make([]byte, size)}
}

// fill reads a new block if the current one is drained. It reports whether
// any unread bytes are available.
func (b *blockReader) fill() bool {
	if b.r < b.w {
		return true
	}
	if b.end || b.err != nil {
		return false
	}
	n, err := b.src.Read(b.buf)
	if n < 0 || n > len(b.buf) {
		n = 0
	}
	b.r, b.w = 0, n
	switch {
	case err == nil:
		if n == 0 {
			b.end = true
		}
	case errors.Is(err, io.EOF):
		b.end = true
	default:
		b.err = err
	}
	return n > 0
}

// peek returns the next byte without consuming it.
func (b *blockReader) peek() (byte, bool) {
	if !b.fill() {
		return 0, false
	}
	return b.buf[b.r], true
}

// next consumes and returns the next byte.
func (b *blockReader) next() (byte, bool) {
	c, ok := b.peek()
	if ok {
		b.r++
		b.off++
	}
	return c, ok
}
