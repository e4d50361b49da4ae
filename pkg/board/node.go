package board

import "github.com/vietanhdev/kirapilot-dnd/pkg/geom"

// Node is the in-memory Element implementation.
//
// Nodes are mutable from the host's side (move a task, resize a column) but
// the engine only ever reads them. A Node with no attributes and no id is a
// plain structural container.
type Node struct {
	id       string
	attrs    map[string]string
	rect     geom.Rect
	children []*Node
}

// NewNode creates a node with the given id and rectangle.
func NewNode(id string, rect geom.Rect) *Node {
	return &Node{id: id, rect: rect}
}

// ID returns the node's identifier.
func (n *Node) ID() string { return n.id }

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute on the node and returns the node for chaining.
func (n *Node) SetAttr(name, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return n
}

// Rect returns the node's bounding rectangle.
func (n *Node) Rect() geom.Rect { return n.rect }

// SetRect replaces the node's rectangle.
func (n *Node) SetRect(r geom.Rect) { n.rect = r }

// Children returns the node's direct children in document order.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Append adds children to the node and returns the node for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// Remove detaches the first descendant node with the given id and returns
// it, or nil if no such node exists. Hosts use this when a drop commits.
func (n *Node) Remove(id string) *Node {
	for i, c := range n.children {
		if c.id == id {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return c
		}
		if found := c.Remove(id); found != nil {
			return found
		}
	}
	return nil
}

// Ensure Node implements Element.
var _ Element = (*Node)(nil)
