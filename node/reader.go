package node

import (
	"fmt"

	"github.com/kamyu1537/kbinxml/errs"
	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/internal/buffer"
	"github.com/kamyu1537/kbinxml/section"
)

// DecodeBinary parses a complete kbin binary document, returning its
// root Node and the text encoding the document declared.
func DecodeBinary(raw []byte) (*Node, format.Encoding, error) {
	header, err := section.Parse(raw)
	if err != nil {
		return nil, 0, err
	}

	nodeStart := section.HeaderSize
	nodeEnd := nodeStart + int(header.NodeSectionLength)
	if nodeEnd < nodeStart || nodeEnd > len(raw) {
		return nil, 0, fmt.Errorf("%w: node section length %d exceeds document", errs.ErrEndOfStream, header.NodeSectionLength)
	}

	dataStart := alignUp4(nodeEnd)
	if dataStart > len(raw) {
		return nil, 0, fmt.Errorf("%w: data section start past end of document", errs.ErrEndOfStream)
	}

	r := &binaryReader{
		compression: header.Compression,
		enc:         header.Encoding,
		nc:          newNodeCursor(raw[nodeStart:nodeEnd]),
		data:        buffer.NewReadCursor(raw[dataStart:]),
	}

	root, err := r.readNode()
	if err != nil {
		return nil, 0, err
	}

	tagByte, err := r.nc.readByte()
	if err != nil {
		return nil, 0, err
	}
	if format.Tag(tagByte) != format.TagFileEnd {
		return nil, 0, fmt.Errorf("%w: expected FileEnd, got tag %d", errs.ErrTypeMismatch, tagByte)
	}

	return root, header.Encoding, nil
}

type binaryReader struct {
	compression byte
	enc         format.Encoding
	nc          *nodeCursor
	data        *buffer.ReadCursor
}

// readNode consumes one node's opening tag/identifier, its value (if
// any), its attributes, and its children, stopping at its matching
// NodeEnd (spec §4.4's state machine).
func (r *binaryReader) readNode() (*Node, error) {
	tagByte, err := r.nc.readByte()
	if err != nil {
		return nil, err
	}
	tag := format.Tag(tagByte)

	if tag == format.TagNodeEnd || tag == format.TagFileEnd {
		return nil, fmt.Errorf("%w: expected a node-opening tag, got %d", errs.ErrTypeMismatch, tag)
	}

	key, err := decodeIdentifier(r.nc, r.compression, r.enc)
	if err != nil {
		return nil, err
	}

	n := New(key)

	if tag != format.TagNodeStart {
		v, err := r.readValueFor(tag)
		if err != nil {
			return nil, err
		}
		n.Value = &v
	}

	for {
		peekByte, err := r.nc.readByte()
		if err != nil {
			return nil, err
		}
		peek := format.Tag(peekByte)

		switch peek {
		case format.TagNodeEnd:
			return n, nil

		case format.TagFileEnd:
			return nil, fmt.Errorf("%w: unexpected FileEnd inside open node %q", errs.ErrInvalidState, n.Key)

		case format.TagAttribute:
			name, err := decodeIdentifier(r.nc, r.compression, r.enc)
			if err != nil {
				return nil, err
			}
			val, err := readStringPayload(r.data, r.enc)
			if err != nil {
				return nil, err
			}
			n.SetAttribute(name, val)

		default:
			r.nc.unread()
			child, err := r.readNode()
			if err != nil {
				return nil, err
			}
			n.AddChild(child)
		}
	}
}

// readValueFor reads the data-section payload for a node whose opening
// tag was rawTag (a type tag, possibly with the array flag set).
func (r *binaryReader) readValueFor(rawTag format.Tag) (Value, error) {
	base := format.BaseTag(rawTag)
	isArray := format.IsArray(rawTag)

	switch base {
	case format.TagString:
		text, err := readStringPayload(r.data, r.enc)
		if err != nil {
			return Value{}, err
		}
		return NewText(format.TagString, text), nil

	case format.TagBinary:
		raw, err := readBinaryPayload(r.data)
		if err != nil {
			return Value{}, err
		}
		return NewBinary(raw), nil

	default:
		spec, err := format.ByID(base)
		if err != nil {
			return Value{}, err
		}

		if isArray {
			elems, err := readArrayPayload(r.data, spec)
			if err != nil {
				return Value{}, err
			}
			if err := validateBoolElems(spec, elems); err != nil {
				return Value{}, err
			}
			r.data.Realign()
			return NewArray(spec, elems)
		}

		elem, err := readScalarPayload(r.data, spec)
		if err != nil {
			return Value{}, err
		}
		if err := validateBoolElems(spec, [][]byte{elem}); err != nil {
			return Value{}, err
		}
		return NewScalar(spec, elem)
	}
}

// validateBoolElems enforces spec §4.6's boolean rule: any byte that
// isn't 0 or 1 is InvalidBoolean, for every lane of every element.
func validateBoolElems(spec format.TypeSpec, elems [][]byte) error {
	if spec.Family != "bool" {
		return nil
	}

	for _, e := range elems {
		for _, b := range e {
			if b != 0 && b != 1 {
				return fmt.Errorf("%w: byte 0x%02x", errs.ErrInvalidBoolean, b)
			}
		}
	}

	return nil
}
