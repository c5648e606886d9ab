// Package buffer provides the growable byte buffer and the three-cursor
// alignment engine (spec §4.3) used to read and write a kbin data stream.
package buffer

import (
	"io"
	"sync"
)

// Default and threshold sizes for the pooled data-stream buffers. Node
// section buffers are typically small (identifiers and structure only);
// data section buffers carry the actual payload bytes and run larger.
const (
	NodeBufferDefaultSize  = 1024 * 4     // 4KiB
	NodeBufferMaxThreshold = 1024 * 64    // 64KiB
	DataBufferDefaultSize  = 1024 * 16    // 16KiB
	DataBufferMaxThreshold = 1024 * 1024  // 1MiB
)

// Buffer is a growable byte slice wrapper reused across encode/decode
// calls via a sync.Pool to keep repeated serialization allocation-free.
type Buffer struct {
	B []byte
}

// New creates a new Buffer with the given starting capacity.
func New(defaultSize int) *Buffer {
	return &Buffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (b *Buffer) Bytes() []byte {
	return b.B
}

// Reset empties the buffer, retaining its allocated memory for reuse.
func (b *Buffer) Reset() {
	b.B = b.B[:0]
}

// Len returns the length of the buffer.
func (b *Buffer) Len() int {
	return len(b.B)
}

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int {
	return cap(b.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (b *Buffer) MustWrite(data []byte) {
	b.B = append(b.B, data...)
}

// Slice returns buf[start:end]. Panics if the indices are out of bounds.
func (b *Buffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(b.B) {
		panic("buffer: Slice: invalid indices")
	}

	return b.B[start:end]
}

// SetLength sets the length of the buffer to n. Bytes exposed by growing
// the length are not zeroed: they keep whatever the underlying array
// already held. Panics if n is negative or greater than the capacity.
func (b *Buffer) SetLength(n int) {
	if n < 0 || n > cap(b.B) {
		panic("buffer: SetLength: invalid length")
	}
	b.B = b.B[:n]
}

// EnsureLength grows the buffer, if necessary, so that Len() >= n, zeroing
// any newly exposed bytes. This is the primitive the cursor types use to
// "reach ahead" of the current write position when a value borrows space
// from within the current dword window.
func (b *Buffer) EnsureLength(n int) {
	if len(b.B) >= n {
		return
	}

	old := len(b.B)
	b.Grow(n - old)
	b.B = b.B[:n]
	clear(b.B[old:])
}

// Grow ensures the buffer can hold requiredBytes more bytes without a
// further reallocation.
//
// Growth strategy: small buffers grow by NodeBufferDefaultSize (whichever
// pool they came from) to minimize reallocations early on; once a buffer's
// capacity exceeds 4x that size, further growth is by 25% of current capacity, trading
// off reallocation frequency against over-allocation.
func (b *Buffer) Grow(requiredBytes int) {
	available := cap(b.B) - len(b.B)
	if available >= requiredBytes {
		return
	}

	growBy := NodeBufferDefaultSize
	if cap(b.B) > 4*NodeBufferDefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Write implements io.Writer, appending data to the buffer.
func (b *Buffer) Write(data []byte) (int, error) {
	b.B = append(b.B, data...)
	return len(data), nil
}

// WriteTo implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.B)
	return int64(n), err
}

// Pool is a sync.Pool of Buffers, with an optional size threshold above
// which oversized buffers are discarded rather than retained.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose Buffers start at defaultSize and are
// discarded on Put once they exceed maxThreshold bytes of capacity.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return New(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a Buffer from the pool.
func (p *Pool) Get() *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	return b
}

// Put returns a Buffer to the pool for reuse.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}

	if p.maxThreshold > 0 && cap(b.B) > p.maxThreshold {
		return
	}

	b.Reset()
	p.pool.Put(b)
}

var (
	nodePool = NewPool(NodeBufferDefaultSize, NodeBufferMaxThreshold)
	dataPool = NewPool(DataBufferDefaultSize, DataBufferMaxThreshold)
)

// GetNodeBuffer retrieves a Buffer from the default node-stream pool.
func GetNodeBuffer() *Buffer { return nodePool.Get() }

// PutNodeBuffer returns a Buffer to the default node-stream pool.
func PutNodeBuffer(b *Buffer) { nodePool.Put(b) }

// GetDataBuffer retrieves a Buffer from the default data-stream pool.
func GetDataBuffer() *Buffer { return dataPool.Get() }

// PutDataBuffer returns a Buffer to the default data-stream pool.
func PutDataBuffer(b *Buffer) { dataPool.Put(b) }
