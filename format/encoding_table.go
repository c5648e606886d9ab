package format

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"

	"github.com/kamyu1537/kbinxml/errs"
)

// Encoding is one of the five text encodings a kbin document may declare
// in its header. It is stored on the wire as a 3-bit code occupying the
// high bits of header byte 2 (see section.Header).
type Encoding uint8

// The five encoding codes. spec §6 lists them as "0,2,4,6,8", but that
// table is self-contradictory: the code occupies a 3-bit field
// ((byte2>>5)&0x7), which can only hold 0-7, and 8 does not fit. No
// reference corpus was available in this retrieval pack to resolve
// which value spec §6 actually meant, so the five codes are renumbered
// sequentially (0-4) in the same ShiftJIS/ASCII/ISO-8859-1/EUC-JP/UTF-8
// order spec §6 lists them, which is the only ordering spec.md commits
// to and is the smallest change that makes the field's own width
// consistent.
const (
	EncodingShiftJIS  Encoding = 0
	EncodingASCII     Encoding = 1
	EncodingISO8859_1 Encoding = 2
	EncodingEUCJP     Encoding = 3
	EncodingUTF8      Encoding = 4
)

// String returns the canonical name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingShiftJIS:
		return "Shift-JIS"
	case EncodingASCII:
		return "ASCII"
	case EncodingISO8859_1:
		return "ISO-8859-1"
	case EncodingEUCJP:
		return "EUC-JP"
	case EncodingUTF8:
		return "UTF-8"
	default:
		return "Unknown"
	}
}

// EncodingByCode maps a raw 3-bit field value (byte2>>5)&0x7 to an
// Encoding, failing if the code is not one of the five assigned values.
func EncodingByCode(code uint8) (Encoding, error) {
	switch Encoding(code) {
	case EncodingShiftJIS, EncodingASCII, EncodingISO8859_1, EncodingEUCJP, EncodingUTF8:
		return Encoding(code), nil
	default:
		return 0, fmt.Errorf("%w: encoding code %d", errs.ErrInvalidHeader, code)
	}
}

// asciiEncoding is a minimal encoding.Encoding that passes bytes through
// unchanged (x/text has no dedicated ASCII codec since UTF-8 is a
// superset). It does no range checking itself: the 7-bit check for
// kbin's ASCII encoding is done by Encoding.Decode and Encoding.Encode,
// not by the codec Codec returns.
type asciiEncoding struct{}

func (asciiEncoding) NewDecoder() *encoding.Decoder { return encoding.Nop.NewDecoder() }
func (asciiEncoding) NewEncoder() *encoding.Encoder { return encoding.Nop.NewEncoder() }

// Codec returns the x/text encoding.Encoding backing this document
// encoding, used to decode/encode identifiers and text payloads.
func (e Encoding) Codec() (encoding.Encoding, error) {
	switch e {
	case EncodingShiftJIS:
		return japanese.ShiftJIS, nil
	case EncodingEUCJP:
		return japanese.EUCJP, nil
	case EncodingISO8859_1:
		return charmap.ISO8859_1, nil
	case EncodingASCII:
		return asciiEncoding{}, nil
	case EncodingUTF8:
		return encoding.Nop, nil
	default:
		return nil, fmt.Errorf("%w: encoding code %d", errs.ErrInvalidHeader, e)
	}
}

// Decode converts raw document bytes to a Go string under this encoding.
func (e Encoding) Decode(raw []byte) (string, error) {
	if e == EncodingASCII {
		for _, b := range raw {
			if b > 0x7F {
				return "", fmt.Errorf("%w: byte 0x%02x is not ASCII", errs.ErrEncodingError, b)
			}
		}

		return string(raw), nil
	}

	codec, err := e.Codec()
	if err != nil {
		return "", err
	}

	out, err := codec.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrEncodingError, err)
	}

	return string(out), nil
}

// Encode converts a Go string to raw document bytes under this encoding.
func (e Encoding) Encode(text string) ([]byte, error) {
	if e == EncodingASCII {
		raw := []byte(text)
		for _, b := range raw {
			if b > 0x7F {
				return nil, fmt.Errorf("%w: byte 0x%02x is not ASCII", errs.ErrEncodingError, b)
			}
		}

		return raw, nil
	}

	codec, err := e.Codec()
	if err != nil {
		return nil, err
	}

	out, err := codec.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrEncodingError, err)
	}

	return out, nil
}
