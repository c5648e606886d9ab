package node

import (
	"fmt"

	"github.com/kamyu1537/kbinxml/errs"
	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/internal/buffer"
	"github.com/kamyu1537/kbinxml/section"
)

// EncodeBinary serializes root into a complete kbin binary document,
// choosing sixbit or raw identifier compression document-wide and
// encoding all text under enc (spec §4.4, §4.5).
func EncodeBinary(root *Node, enc format.Encoding) ([]byte, error) {
	compression := section.CompressionSixbit
	if !canSixbit(collectIdentifiers(root)) {
		compression = section.CompressionRaw
	}

	nodeBuf := buffer.GetNodeBuffer()
	defer buffer.PutNodeBuffer(nodeBuf)
	dataBuf := buffer.GetDataBuffer()
	defer buffer.PutDataBuffer(dataBuf)

	w := &binaryWriter{
		compression: compression,
		enc:         enc,
		nodeBuf:     nodeBuf,
		data:        buffer.NewWriteCursor(dataBuf),
	}

	if err := w.writeNode(root); err != nil {
		return nil, err
	}
	w.writeSentinel(format.TagFileEnd)

	header := section.Header{
		Compression:       compression,
		Encoding:          enc,
		NodeSectionLength: int32(nodeBuf.Len()),
	}

	out := make([]byte, 0, section.HeaderSize+alignUp4(nodeBuf.Len())+dataBuf.Len())
	out = append(out, header.Bytes()...)
	out = append(out, nodeBuf.Bytes()...)
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	out = append(out, dataBuf.Bytes()...)

	return out, nil
}

// collectIdentifiers walks n in document order, gathering every key and
// attribute name the document will need to encode as an identifier.
func collectIdentifiers(n *Node) []string {
	var out []string

	var walk func(*Node)
	walk = func(n *Node) {
		out = append(out, n.Key)
		for _, a := range n.Attributes {
			out = append(out, a.Name)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)

	return out
}

type binaryWriter struct {
	compression byte
	enc         format.Encoding
	nodeBuf     *buffer.Buffer
	data        *buffer.WriteCursor
}

func (w *binaryWriter) writeTagIdentifier(tag format.Tag, key string) error {
	w.nodeBuf.MustWrite([]byte{byte(tag)})
	return encodeIdentifier(w.nodeBuf, w.compression, w.enc, key)
}

func (w *binaryWriter) writeSentinel(tag format.Tag) {
	w.nodeBuf.MustWrite([]byte{byte(tag)})
}

func (w *binaryWriter) writeValue(v *Value) error {
	switch v.Tag {
	case format.TagString:
		payload, err := buildStringPayload(v.Text, w.enc)
		if err != nil {
			return err
		}
		_, err = w.data.Write(len(payload), payload)
		return err

	case format.TagBinary:
		payload := buildBinaryPayload(v.Raw)
		_, err := w.data.Write(len(payload), payload)
		return err

	default:
		spec, err := format.ByID(v.Tag)
		if err != nil {
			return err
		}

		if v.IsArray {
			payload, err := buildArrayPayload(spec, *v)
			if err != nil {
				return err
			}
			if _, err := w.data.Write(len(payload), payload); err != nil {
				return err
			}
			// A completed array closes off any packed short-value window
			// that was open before it (spec §4.5's realign_writes).
			w.data.Realign()
			return nil
		}

		if v.Len() != 1 {
			return fmt.Errorf("%w: scalar value must carry exactly one element, got %d", errs.ErrSizeMismatch, v.Len())
		}

		return writeScalarPayload(w.data, spec, v.Elems[0])
	}
}

func (w *binaryWriter) writeNode(n *Node) error {
	tag := format.TagNodeStart
	if n.Value != nil {
		tag = format.BaseTag(n.Value.Tag)
		if n.Value.IsArray {
			tag |= format.ArrayFlag
		}
	}

	if err := w.writeTagIdentifier(tag, n.Key); err != nil {
		return err
	}

	if n.Value != nil {
		if err := w.writeValue(n.Value); err != nil {
			return err
		}
	}

	for _, a := range n.Attributes {
		if err := w.writeTagIdentifier(format.TagAttribute, a.Name); err != nil {
			return err
		}
		payload, err := buildStringPayload(a.Value, w.enc)
		if err != nil {
			return err
		}
		if _, err := w.data.Write(len(payload), payload); err != nil {
			return err
		}
	}

	for _, c := range n.Children {
		if err := w.writeNode(c); err != nil {
			return err
		}
	}

	w.writeSentinel(format.TagNodeEnd)

	return nil
}
