package node

import (
	"encoding/binary"
	"fmt"

	"github.com/kamyu1537/kbinxml/errs"
	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/internal/buffer"
)

// alignUp4 rounds n up to the next multiple of 4.
func alignUp4(n int) int {
	return (n + 3) &^ 3
}

// buildStringPayload builds the on-wire form of a string or attribute
// value: a 4-byte length (the encoded text plus its trailing NUL),
// followed by that many bytes, zero-padded out to a 4-byte boundary
// (spec §4.6).
func buildStringPayload(text string, enc format.Encoding) ([]byte, error) {
	raw, err := enc.Encode(text)
	if err != nil {
		return nil, err
	}

	contentLen := len(raw) + 1 // trailing NUL
	out := make([]byte, 4+alignUp4(contentLen))
	binary.BigEndian.PutUint32(out[0:4], uint32(contentLen))
	copy(out[4:], raw)
	// out[4+len(raw)] and any further padding bytes are already zero.

	return out, nil
}

// readStringPayload reads a string/attribute payload at the cursor's
// current dword-aligned position and returns the decoded text.
func readStringPayload(cursor *buffer.ReadCursor, enc format.Encoding) (string, error) {
	lenBytes, err := cursor.Read(4)
	if err != nil {
		return "", err
	}
	contentLen := int(binary.BigEndian.Uint32(lenBytes))
	if contentLen < 1 {
		return "", fmt.Errorf("%w: string length %d must include a trailing NUL", errs.ErrSizeMismatch, contentLen)
	}

	body, err := cursor.Read(alignUp4(contentLen))
	if err != nil {
		return "", err
	}

	return enc.Decode(body[:contentLen-1])
}

// buildBinaryPayload builds bin's on-wire form: a 4-byte length, then
// that many raw bytes, zero-padded to a 4-byte boundary.
func buildBinaryPayload(raw []byte) []byte {
	out := make([]byte, 4+alignUp4(len(raw)))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(raw)))
	copy(out[4:], raw)

	return out
}

func readBinaryPayload(cursor *buffer.ReadCursor) ([]byte, error) {
	lenBytes, err := cursor.Read(4)
	if err != nil {
		return nil, err
	}
	n := int(binary.BigEndian.Uint32(lenBytes))

	body, err := cursor.Read(alignUp4(n))
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), body[:n]...), nil
}

// writeScalarPayload writes a single (non-array) registered type's
// value through cursor one lane at a time: spec.Count calls of
// spec.Size bytes each, rather than one len(spec.Bytes())-sized call.
// A fixed vector whose total footprint isn't already a multiple of 4
// (3u16's 6 bytes, 3u8's 3 bytes, ...) must still have each lane go
// through the cursor's own byte/word borrowing logic; treating the
// whole vector as one oversized write would misalign the dword cursor
// for every value written after it (spec §4.3).
func writeScalarPayload(cursor *buffer.WriteCursor, spec format.TypeSpec, elem []byte) error {
	if len(elem) != spec.Bytes() {
		return fmt.Errorf("%w: %s expects %d bytes, got %d", errs.ErrSizeMismatch, spec.Name, spec.Bytes(), len(elem))
	}

	for i := 0; i < spec.Count; i++ {
		lane := elem[i*spec.Size : (i+1)*spec.Size]
		if _, err := cursor.Write(spec.Size, lane); err != nil {
			return err
		}
	}

	return nil
}

// readScalarPayload is the inverse of writeScalarPayload: it reads
// spec.Count lanes of spec.Size bytes each back off cursor and
// concatenates them into one spec.Bytes()-long value.
func readScalarPayload(cursor *buffer.ReadCursor, spec format.TypeSpec) ([]byte, error) {
	out := make([]byte, 0, spec.Bytes())

	for i := 0; i < spec.Count; i++ {
		lane, err := cursor.Read(spec.Size)
		if err != nil {
			return nil, err
		}
		out = append(out, lane...)
	}

	return out, nil
}

// buildArrayPayload builds a registered type's array on-wire bytes: a
// 4-byte byte-length, then the packed elements with no inner padding,
// zero-padded out to a 4-byte boundary (spec §4.4, §8).
func buildArrayPayload(spec format.TypeSpec, v Value) ([]byte, error) {
	body := make([]byte, 0, v.Len()*spec.Bytes())
	for _, e := range v.Elems {
		body = append(body, e...)
	}

	out := make([]byte, 4+alignUp4(len(body)))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(body)))
	copy(out[4:], body)

	return out, nil
}

// readArrayPayload reads a registered type's array payload, validating
// that the byte-length is a multiple of the element size.
func readArrayPayload(cursor *buffer.ReadCursor, spec format.TypeSpec) ([][]byte, error) {
	lenBytes, err := cursor.Read(4)
	if err != nil {
		return nil, err
	}
	byteLen := int(binary.BigEndian.Uint32(lenBytes))

	body, err := cursor.Read(alignUp4(byteLen))
	if err != nil {
		return nil, err
	}
	body = body[:byteLen]

	unit := spec.Bytes()
	if unit == 0 || byteLen%unit != 0 {
		return nil, fmt.Errorf("%w: %s array byte length %d is not a multiple of %d", errs.ErrSizeMismatch, spec.Name, byteLen, unit)
	}

	n := byteLen / unit
	elems := make([][]byte, n)
	for i := 0; i < n; i++ {
		elems[i] = append([]byte(nil), body[i*unit:(i+1)*unit]...)
	}

	return elems, nil
}
