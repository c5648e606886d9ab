package node

import (
	"fmt"

	"github.com/kamyu1537/kbinxml/errs"
	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/internal/buffer"
	"github.com/kamyu1537/kbinxml/section"
	"github.com/kamyu1537/kbinxml/sixbit"
)

// canSixbit reports whether every identifier a document needs can be
// sixbit-encoded; if not, the whole document falls back to raw
// identifiers (spec §4.5).
func canSixbit(idents []string) bool {
	for _, s := range idents {
		if !sixbit.IsAlphabet(s) {
			return false
		}
	}

	return true
}

// encodeIdentifier appends key's wire form (length-prefix plus payload)
// to nodeBuf, under the document's chosen compression.
func encodeIdentifier(nodeBuf *buffer.Buffer, compression byte, enc format.Encoding, key string) error {
	switch compression {
	case section.CompressionSixbit:
		packed, err := sixbit.Encode(key)
		if err != nil {
			return err
		}
		nodeBuf.MustWrite(packed)

	case section.CompressionRaw:
		raw, err := enc.Encode(key)
		if err != nil {
			return err
		}
		lengthByte, err := sixbit.EncodeRawLength(len(raw))
		if err != nil {
			return err
		}
		nodeBuf.MustWrite([]byte{lengthByte})
		nodeBuf.MustWrite(raw)

	default:
		return fmt.Errorf("%w: unknown compression flag 0x%02x", errs.ErrInvalidHeader, compression)
	}

	return nil
}

// nodeCursor walks a node-stream byte slice, tracking a read position.
type nodeCursor struct {
	data []byte
	pos  int
}

func newNodeCursor(data []byte) *nodeCursor {
	return &nodeCursor{data: data}
}

func (c *nodeCursor) readByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, fmt.Errorf("%w: node stream truncated", errs.ErrEndOfStream)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *nodeCursor) readN(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, fmt.Errorf("%w: node stream needs %d bytes, have %d", errs.ErrEndOfStream, n, len(c.data)-c.pos)
	}
	out := c.data[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

func (c *nodeCursor) done() bool {
	return c.pos >= len(c.data)
}

// unread steps the cursor back by one byte, used by the reader to "peek"
// a tag byte and, if it turns out to open a child node rather than close
// or annotate the current one, hand it back for a recursive read.
func (c *nodeCursor) unread() {
	c.pos--
}

// decodeIdentifier reads one identifier from the node stream under the
// document's compression flag.
func decodeIdentifier(c *nodeCursor, compression byte, enc format.Encoding) (string, error) {
	switch compression {
	case section.CompressionSixbit:
		l, err := c.readByte()
		if err != nil {
			return "", err
		}
		packed, err := c.readN(sixbit.PackedLen(int(l)))
		if err != nil {
			return "", err
		}
		return sixbit.Decode(int(l), packed)

	case section.CompressionRaw:
		lb, err := c.readByte()
		if err != nil {
			return "", err
		}
		l, err := sixbit.DecodeRawLength(lb)
		if err != nil {
			return "", err
		}
		raw, err := c.readN(l)
		if err != nil {
			return "", err
		}
		return enc.Decode(raw)

	default:
		return "", fmt.Errorf("%w: unknown compression flag 0x%02x", errs.ErrInvalidHeader, compression)
	}
}
