// Package node implements the in-memory kbin tree (Node/Value), the
// binary reader/writer that walk it against the dual-stream wire format,
// and the bridge to/from text XML (spec §3, §4.4–§4.7).
package node

import (
	"fmt"

	"github.com/kamyu1537/kbinxml/errs"
	"github.com/kamyu1537/kbinxml/format"
)

// Value is the tagged union backing a Node's optional payload: exactly
// the primitive scalar/vector types registered in format.TypeRegistry,
// plus String, Binary and Attribute. It is a plain struct rather than an
// interface hierarchy: the type set is closed, and every case is reached
// by switching on Tag rather than by dynamic dispatch.
//
// For String/Attribute, Text holds the decoded payload. For Binary, Raw
// holds the payload bytes directly. For everything else, Elems holds one
// []byte per repetition unit, each exactly spec.Bytes() long and in
// on-wire big-endian order; IsArray means more than one repetition unit
// may be present and the whole thing was length-prefixed on the wire.
type Value struct {
	Tag     format.Tag
	IsArray bool
	Text    string
	Raw     []byte
	Elems   [][]byte
}

// NewText builds a String or Attribute value.
func NewText(tag format.Tag, text string) Value {
	return Value{Tag: tag, Text: text}
}

// NewBinary builds a Binary value.
func NewBinary(raw []byte) Value {
	return Value{Tag: format.TagBinary, Raw: raw}
}

// NewScalar builds a single (non-array) value of a registered type from
// its on-wire bytes.
func NewScalar(spec format.TypeSpec, elem []byte) (Value, error) {
	if len(elem) != spec.Bytes() {
		return Value{}, fmt.Errorf("%w: %s expects %d bytes, got %d", errs.ErrSizeMismatch, spec.Name, spec.Bytes(), len(elem))
	}

	return Value{Tag: spec.ID, Elems: [][]byte{elem}}, nil
}

// NewArray builds an array value of a registered type from its
// constituent repetition units.
func NewArray(spec format.TypeSpec, elems [][]byte) (Value, error) {
	for i, e := range elems {
		if len(e) != spec.Bytes() {
			return Value{}, fmt.Errorf("%w: %s element %d expects %d bytes, got %d", errs.ErrSizeMismatch, spec.Name, i, spec.Bytes(), len(e))
		}
	}

	return Value{Tag: spec.ID, IsArray: true, Elems: elems}, nil
}

// Len returns the number of repetition units a non-text, non-binary
// value carries (1 for a scalar or fixed vector, N for an array).
func (v Value) Len() int {
	return len(v.Elems)
}
