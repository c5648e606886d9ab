package sixbit

import (
	"fmt"

	"github.com/kamyu1537/kbinxml/errs"
)

// MaxRawLength is the largest identifier length the raw (non-sixbit)
// length encoding can represent: the length byte's low 6 bits hold
// length-1, so the largest representable length is 64.
const MaxRawLength = 64

// rawLengthFlag marks a node-stream identifier length byte as "raw", as
// opposed to a sixbit-compressed identifier's plain character count.
const rawLengthFlag = 0x40

// EncodeRawLength returns the length byte for a raw (uncompressed)
// identifier of length l: (l-1) | 0x40.
func EncodeRawLength(l int) (byte, error) {
	if l < 1 || l > MaxRawLength {
		return 0, fmt.Errorf("%w: raw identifier length %d out of range 1..%d", errs.ErrInvalidIdentifier, l, MaxRawLength)
	}

	return byte(l-1) | rawLengthFlag, nil
}

// DecodeRawLength recovers the identifier length from a raw length byte,
// failing if the raw marker bit isn't set.
func DecodeRawLength(b byte) (int, error) {
	if b&rawLengthFlag == 0 {
		return 0, fmt.Errorf("%w: byte 0x%02x is not a raw identifier length", errs.ErrInvalidIdentifier, b)
	}

	return int(b&^rawLengthFlag) + 1, nil
}

