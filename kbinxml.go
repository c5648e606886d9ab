// Package kbinxml implements kbin, a compact dual-stream binary
// serialization format that is isomorphic to a restricted subset of
// XML: every document that round-trips through the binary codec also
// round-trips through the text codec, and vice versa.
//
// # Basic usage
//
// Building a tree and writing it to kbin's binary wire format:
//
//	root := node.New("config")
//	spec, _ := format.ByName("s32")
//	v, _ := node.NewScalar(spec, []byte{0, 0, 0, 42})
//	child := node.New("retries")
//	child.Value = &v
//	root.AddChild(child)
//
//	raw, err := kbinxml.EncodeBinary(root, format.EncodingUTF8)
//
// Reading it back:
//
//	tree, enc, err := kbinxml.DecodeBinary(raw)
//
// The text codec (plain, human-editable XML using the reserved
// __type/__count/__size attributes from spec §4.7) is symmetric:
//
//	raw, err := kbinxml.EncodeText(root, format.EncodingUTF8)
//	tree, enc, err := kbinxml.DecodeText(raw)
//
// # Package structure
//
// This package is a thin wrapper around node, which holds the actual
// tree type, the binary reader/writer, and the XML bridge. Use node
// directly for anything beyond the four top-level operations re-exposed
// here: building trees, walking them via node.Walk, or parsing
// individual typed values via node.EncodeElement/node.DecodeElement.
package kbinxml

import (
	"github.com/kamyu1537/kbinxml/format"
	"github.com/kamyu1537/kbinxml/node"
)

// Node is the in-memory tree element: an identifier, its ordered
// attributes, its children, and at most one direct Value.
type Node = node.Node

// Value is the tagged union backing a Node's optional payload.
type Value = node.Value

// Attribute is one name/value pair on a Node.
type Attribute = node.Attribute

// EncodeBinary serializes root into a complete kbin binary document
// under the given text encoding, choosing sixbit or raw identifier
// compression document-wide (spec §4.4, §4.5).
func EncodeBinary(root *Node, enc format.Encoding) ([]byte, error) {
	return node.EncodeBinary(root, enc)
}

// DecodeBinary parses a complete kbin binary document, returning its
// root Node and the text encoding the document declared.
func DecodeBinary(raw []byte) (*Node, format.Encoding, error) {
	return node.DecodeBinary(raw)
}

// EncodeText renders root as kbin's text XML syntax under the given
// text encoding (spec §4.7).
func EncodeText(root *Node, enc format.Encoding) ([]byte, error) {
	return node.EncodeText(root, enc)
}

// DecodeText parses kbin's text XML syntax into a Node tree.
func DecodeText(raw []byte) (*Node, format.Encoding, error) {
	return node.DecodeText(raw)
}
