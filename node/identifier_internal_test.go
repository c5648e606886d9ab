package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/internal/buffer"
	"github.com/kamyu1537/kbinxml/section"
)

func TestCanSixbit(t *testing.T) {
	assert.True(t, canSixbit([]string{"a", "b_c", "d:e"}))
	assert.False(t, canSixbit([]string{"a", "has space"}))
}

func TestEncodeDecodeIdentifier_Sixbit(t *testing.T) {
	buf := buffer.New(64)
	require.NoError(t, encodeIdentifier(buf, section.CompressionSixbit, format.EncodingUTF8, "hello"))

	nc := newNodeCursor(buf.Bytes())
	got, err := decodeIdentifier(nc, section.CompressionSixbit, format.EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.True(t, nc.done())
}

func TestEncodeDecodeIdentifier_Raw(t *testing.T) {
	buf := buffer.New(64)
	require.NoError(t, encodeIdentifier(buf, section.CompressionRaw, format.EncodingUTF8, "has space"))

	nc := newNodeCursor(buf.Bytes())
	got, err := decodeIdentifier(nc, section.CompressionRaw, format.EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, "has space", got)
}

func TestNodeCursor_UnreadRewindsOneByte(t *testing.T) {
	nc := newNodeCursor([]byte{0x01, 0x02, 0x03})
	b1, err := nc.readByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b1)

	nc.unread()
	b1Again, err := nc.readByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b1Again)
}

func TestNodeCursor_ReadPastEndErrors(t *testing.T) {
	nc := newNodeCursor([]byte{0x01})
	_, err := nc.readByte()
	require.NoError(t, err)

	_, err = nc.readByte()
	assert.Error(t, err)
}
