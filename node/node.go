package node

// Attribute is one name/value pair on a Node, kept in a slice rather than
// a map so that document order survives both round-trips (spec §3).
type Attribute struct {
	Name  string
	Value string
}

// Node is the in-memory tree element: an identifier, its ordered
// attributes, its children, and at most one direct Value. Children and a
// Value may coexist; the XML mapping renders Value as the element's text
// content.
type Node struct {
	Key        string
	Attributes []Attribute
	Children   []*Node
	Value      *Value
}

// New creates a childless, attribute-less, valueless Node named key.
func New(key string) *Node {
	return &Node{Key: key}
}

// SetAttribute appends name/value, or overwrites value in place if name
// was already set, preserving its original position.
func (n *Node) SetAttribute(name, value string) {
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			n.Attributes[i].Value = value
			return
		}
	}

	n.Attributes = append(n.Attributes, Attribute{Name: name, Value: value})
}

// Attribute returns the value set for name and whether it was present.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// AddChild appends child to n's children in document order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// IsContainer reports whether n carries no direct value, i.e. it is a
// valueless container in the node stream's NodeStart sense.
func (n *Node) IsContainer() bool {
	return n.Value == nil
}
