package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kamyu1537/kbinxml/internal/buffer"
)

func TestBuffer_MustWriteAndReset(t *testing.T) {
	b := buffer.New(4)
	b.MustWrite([]byte{1, 2, 3})
	assert.Equal(t, 3, b.Len())

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.GreaterOrEqual(t, b.Cap(), 4)
}

func TestBuffer_EnsureLengthZeroExtends(t *testing.T) {
	b := buffer.New(2)
	b.EnsureLength(8)
	assert.Equal(t, 8, b.Len())
	for _, v := range b.Bytes() {
		assert.Equal(t, byte(0), v)
	}
}

func TestBuffer_Grow(t *testing.T) {
	b := buffer.New(4)
	b.MustWrite([]byte{1, 2, 3, 4})
	b.Grow(100)
	assert.GreaterOrEqual(t, b.Cap()-b.Len(), 100)
}

func TestPool_GetPutRoundTrip(t *testing.T) {
	p := buffer.NewPool(16, 64)
	b := p.Get()
	b.MustWrite([]byte{1, 2, 3})
	p.Put(b)

	b2 := p.Get()
	assert.Equal(t, 0, b2.Len(), "Put must Reset before returning to the pool")
}

func TestPool_DiscardsOversizedBuffers(t *testing.T) {
	p := buffer.NewPool(4, 8)
	b := buffer.New(100)
	p.Put(b)
	// Can't directly assert discard without reaching into sync.Pool internals;
	// this at least exercises the threshold branch without panicking.
	_ = p.Get()
}
