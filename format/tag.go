package format

// Tag identifies the wire type of a node stream event or value payload.
//
// The high bit of a stored tag byte (ArrayFlag) is not part of the tag's
// identity: it is an orthogonal marker meaning "this event carries a
// length-prefixed repetition of the tag's element type" rather than a
// single element. Sentinel tags (NodeStart, NodeEnd, FileEnd, Attribute)
// are never combined with ArrayFlag; only value-bearing type tags are.
type Tag uint8

// ArrayFlag is the high bit of a wire tag byte. When set, the value is a
// 4-byte byte-length followed by that many bytes of repeated elements of
// the tag's underlying type.
const ArrayFlag Tag = 0x80

// Sentinel tags. These carry no TypeSpec entry: NodeStart/NodeEnd/FileEnd
// carry no data and no identifier (beyond NodeStart's own), Attribute and
// String both carry a following text payload but are distinguished by
// where they occur in the node stream.
const (
	TagNodeStart Tag = 1
	TagString    Tag = 10
	TagBinary    Tag = 11
	TagAttribute Tag = 46
	TagNodeEnd   Tag = 190
	TagFileEnd   Tag = 191
)

// BaseTag strips the array flag, returning the underlying element tag.
func BaseTag(t Tag) Tag {
	return t &^ ArrayFlag
}

// IsArray reports whether the array flag is set on t.
func IsArray(t Tag) bool {
	return t&ArrayFlag != 0
}

// IsSentinel reports whether t is one of the six structural/sentinel tags
// rather than a type tag with a TypeSpec entry.
func IsSentinel(t Tag) bool {
	switch t {
	case TagNodeStart, TagString, TagBinary, TagAttribute, TagNodeEnd, TagFileEnd:
		return true
	default:
		return false
	}
}
