package buffer

import (
	"fmt"

	"github.com/kamyu1537/kbinxml/errs"
)

// WriteCursor implements the data stream's three-cursor alignment scheme
// (spec §4.3): a byteCursor and wordCursor borrow unused padding from
// within the current 4-byte dword window so that runs of 1- and 2-byte
// values pack tightly, while any value 4 bytes or wider is appended
// directly at the dword cursor, which is the only cursor that ever
// allocates fresh space.
type WriteCursor struct {
	buf         *Buffer
	byteCursor  int
	wordCursor  int
	dwordCursor int
}

// NewWriteCursor creates a WriteCursor writing into buf, starting all
// three cursors at buf's current length.
func NewWriteCursor(buf *Buffer) *WriteCursor {
	start := buf.Len()
	return &WriteCursor{
		buf:         buf,
		byteCursor:  start,
		wordCursor:  start,
		dwordCursor: start,
	}
}

// Dword reports the current dword cursor position, i.e. the total number
// of bytes claimed from the stream so far.
func (c *WriteCursor) Dword() int {
	return c.dwordCursor
}

// Write appends data (len(data) == size) at the cursor appropriate for
// size, per the borrowing rule: 1-byte values use the byte cursor, 2-byte
// values use the word cursor, and everything else uses the dword cursor
// directly. It returns the stream offset the value was written at.
func (c *WriteCursor) Write(size int, data []byte) (int, error) {
	if len(data) != size {
		return 0, fmt.Errorf("buffer: WriteCursor.Write: size %d does not match len(data) %d", size, len(data))
	}

	switch size {
	case 1:
		return c.writeSmall(&c.byteCursor, data)
	case 2:
		return c.writeSmall(&c.wordCursor, data)
	default:
		return c.writeDword(data)
	}
}

// writeSmall writes data at *cursor, grabbing a fresh dword-aligned
// window first if *cursor has exhausted the one it was last given.
func (c *WriteCursor) writeSmall(cursor *int, data []byte) (int, error) {
	if *cursor%4 == 0 {
		*cursor = c.dwordCursor
		c.dwordCursor += 4
		c.buf.EnsureLength(c.dwordCursor)
	}

	offset := *cursor
	c.buf.EnsureLength(offset + len(data))
	copy(c.buf.B[offset:], data)
	*cursor += len(data)

	return offset, nil
}

// writeDword appends data directly at the dword cursor and then refreshes
// byteCursor/wordCursor to the new dword position, since the window they
// were borrowing from is now behind data just written here. On-wire sizes
// reaching this path (a 4- or 8-byte lane, or a length-prefixed
// str/bin/array block) are always multiples of 4, so the dword cursor
// stays 4-byte aligned.
func (c *WriteCursor) writeDword(data []byte) (int, error) {
	offset := c.dwordCursor
	c.buf.EnsureLength(offset + len(data))
	copy(c.buf.B[offset:], data)
	c.dwordCursor += len(data)
	c.byteCursor = c.dwordCursor
	c.wordCursor = c.dwordCursor

	return offset, nil
}

// Realign forces the next byte- or word-sized write to start a fresh
// dword window rather than reuse whatever window byteCursor/wordCursor
// were last pointing into. The reader and writer both call this after an
// array (or the outermost array) finishes, since kbin never lets a
// packed run of small values straddle an array boundary.
func (c *WriteCursor) Realign() {
	c.byteCursor = c.dwordCursor
	c.wordCursor = c.dwordCursor
}

// ReadCursor is the read-side mirror of WriteCursor: it reproduces the
// same three-cursor walk over an already-materialized data stream.
type ReadCursor struct {
	data        []byte
	byteCursor  int
	wordCursor  int
	dwordCursor int
}

// NewReadCursor creates a ReadCursor over data, all three cursors
// starting at offset 0.
func NewReadCursor(data []byte) *ReadCursor {
	return &ReadCursor{data: data}
}

// Dword reports the current dword cursor position.
func (c *ReadCursor) Dword() int {
	return c.dwordCursor
}

// Read consumes and returns the next size bytes at the cursor
// appropriate for size, following the same borrowing rule as WriteCursor.
func (c *ReadCursor) Read(size int) ([]byte, error) {
	switch size {
	case 1:
		return c.readSmall(&c.byteCursor, size)
	case 2:
		return c.readSmall(&c.wordCursor, size)
	default:
		return c.readDword(size)
	}
}

func (c *ReadCursor) readSmall(cursor *int, size int) ([]byte, error) {
	if *cursor%4 == 0 {
		*cursor = c.dwordCursor
		c.dwordCursor += 4
	}

	offset := *cursor
	if offset+size > len(c.data) {
		return nil, fmt.Errorf("%w: ReadCursor.Read: need %d bytes at offset %d, have %d", errs.ErrEndOfStream, size, offset, len(c.data))
	}

	out := c.data[offset : offset+size]
	*cursor += size

	return out, nil
}

func (c *ReadCursor) readDword(size int) ([]byte, error) {
	offset := c.dwordCursor
	if offset+size > len(c.data) {
		return nil, fmt.Errorf("%w: ReadCursor.Read: need %d bytes at offset %d, have %d", errs.ErrEndOfStream, size, offset, len(c.data))
	}

	out := c.data[offset : offset+size]
	c.dwordCursor += size
	c.byteCursor = c.dwordCursor
	c.wordCursor = c.dwordCursor

	return out, nil
}

// Realign is the read-side counterpart of WriteCursor.Realign.
func (c *ReadCursor) Realign() {
	c.byteCursor = c.dwordCursor
	c.wordCursor = c.dwordCursor
}
