package node

import "github.com/kamyu1537/kbinxml/format"

// NodeDefinition is the low-level shape of one node-stream event: a tag,
// whether its array flag is set, and the raw key/value bytes it carries
// once they have been through sixbit/raw identifier encoding and value
// byte encoding. Neither the binary writer nor the text bridge builds
// NodeDefinitions: the writer makes its document-wide sixbit-vs-raw
// decision from collectIdentifiers over *Node directly.
type NodeDefinition struct {
	Tag      format.Tag
	IsArray  bool
	Key      string
	KeyBytes []byte
	Value    []byte
}

// HasValue reports whether this definition carries a data-section
// payload (as opposed to a bare structural event like NodeEnd).
func (d NodeDefinition) HasValue() bool {
	return d.Value != nil
}

// NodeCollection is the staged, pre-flattening form of one Node: its own
// definition, its attribute definitions in document order, and its child
// collections in document order. Nothing else in this package builds or
// consumes a NodeCollection: the binary writer works from the Node tree
// directly, and DecodeText keeps its own stack of parseFrames against
// *Node instead.
type NodeCollection struct {
	Base       NodeDefinition
	Attributes []NodeDefinition
	Children   []*NodeCollection
}

// AllIdentifiers yields every key this collection (including its
// attributes and, recursively, its children) will need encoded as a
// node-stream identifier, in document order. EncodeBinary does not call
// it; its sixbit check uses collectIdentifiers in writer.go.
func (c *NodeCollection) AllIdentifiers() []string {
	var out []string
	c.collectIdentifiers(&out)
	return out
}

func (c *NodeCollection) collectIdentifiers(out *[]string) {
	*out = append(*out, c.Base.Key)
	for _, a := range c.Attributes {
		*out = append(*out, a.Key)
	}
	for _, child := range c.Children {
		child.collectIdentifiers(out)
	}
}
