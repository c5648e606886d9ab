// Package section implements the fixed 8-byte document header that opens
// every kbin binary payload (spec §4.4, §6).
package section

import (
	"encoding/binary"
	"fmt"

	"github.com/kamyu1537/kbinxml/errs"
	"github.com/kamyu1537/kbinxml/format"
)

// HeaderSize is the fixed byte length of a kbin document header.
const HeaderSize = 8

// Magic is the fixed first header byte of every kbin document.
const Magic = 0xA0

// Compression flags: the second header byte, recording whether node
// stream identifiers are sixbit-packed or raw length-prefixed. This is a
// document-wide choice: if any identifier in the document cannot be
// sixbit-encoded, the whole document falls back to raw (spec §4.5).
const (
	CompressionSixbit byte = 0x42
	CompressionRaw    byte = 0x45
)

// Header is the 8-byte structure opening a kbin binary document: magic,
// compression flag, self-validating encoding byte, and the byte length
// of the node section that follows the header.
type Header struct {
	Compression       byte
	Encoding          format.Encoding
	NodeSectionLength int32
}

// Bytes serializes the header.
//
// Byte layout: magic, compression flag, encoding byte (high 5 bits the
// code, low 3 bits its bitwise complement), padding byte, then the
// 4-byte big-endian node section length.
func (h Header) Bytes() []byte {
	out := make([]byte, HeaderSize)
	out[0] = Magic
	out[1] = h.Compression
	out[2] = encodingByte(h.Encoding)
	out[3] = 0
	binary.BigEndian.PutUint32(out[4:8], uint32(h.NodeSectionLength))

	return out
}

// Parse reads a Header from the first HeaderSize bytes of data.
func Parse(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrEndOfStream, HeaderSize, len(data))
	}

	if data[0] != Magic {
		return Header{}, fmt.Errorf("%w: magic byte 0x%02x, want 0x%02x", errs.ErrInvalidHeader, data[0], Magic)
	}

	switch data[1] {
	case CompressionSixbit, CompressionRaw:
	default:
		return Header{}, fmt.Errorf("%w: compression flag 0x%02x", errs.ErrInvalidHeader, data[1])
	}

	enc, err := decodeEncodingByte(data[2])
	if err != nil {
		return Header{}, err
	}

	return Header{
		Compression:       data[1],
		Encoding:          enc,
		NodeSectionLength: int32(binary.BigEndian.Uint32(data[4:8])),
	}, nil
}

// encodingByte packs an Encoding's 3-bit code into the high 5 bits of the
// header's encoding byte, with the low 3 bits holding its bitwise
// complement: pattern (c<<5) | (~(c<<5) & 0xFF) restricted to its low 3
// bits, per spec §6.
func encodingByte(e format.Encoding) byte {
	high := byte(e) << 5
	return high | (^high & 0x07)
}

// decodeEncodingByte validates and unpacks an encoding byte, failing if
// the low 3 bits don't match the complement of the high 5 bits.
func decodeEncodingByte(b byte) (format.Encoding, error) {
	high := b &^ 0x07
	low := b & 0x07
	if low != ^high&0x07 {
		return 0, fmt.Errorf("%w: encoding byte 0x%02x fails complement check", errs.ErrInvalidHeader, b)
	}

	return format.EncodingByCode(high >> 5)
}
