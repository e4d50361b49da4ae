// Package board models the element tree the drag engine reads geometry from.
//
// The engine's only coupling to a host UI is attribute-based: draggable items
// carry the "data-task-id" attribute and their containers carry
// "data-column-id". Any renderer that exposes its elements through the
// Element interface with those attributes can plug in. The package also
// ships a concrete in-memory Node tree, which is what the simulator, the
// TUI demo, the debug web server, and the tests use.
//
// Elements are read-only from the engine's point of view: the engine never
// mutates a tree it is handed, it only reads identifiers and rectangles.
package board

import "github.com/vietanhdev/kirapilot-dnd/pkg/geom"

// Attribute names forming the coupling contract with host renderers.
const (
	// AttrTaskID tags a draggable item with its stable identifier.
	AttrTaskID = "data-task-id"

	// AttrColumnID tags a droppable container with its stable identifier.
	AttrColumnID = "data-column-id"
)

// Element is a node in a host UI's element tree.
//
// Implementations must be cheap to query: Rect is called on every pointer
// move for every candidate item, so it should return current geometry
// without layout recomputation.
type Element interface {
	// ID returns the element's own identifier, which may be empty.
	ID() string

	// Attr returns the value of the named attribute and whether it is set.
	Attr(name string) (string, bool)

	// Rect returns the element's current bounding rectangle in screen space.
	Rect() geom.Rect

	// Children returns the element's direct children in document order.
	Children() []Element
}

// FindByAttr returns the first element in el's subtree (including el itself,
// depth-first in document order) whose attribute attr equals value.
// Returns nil when no such element exists.
func FindByAttr(el Element, attr, value string) Element {
	if el == nil {
		return nil
	}
	if v, ok := el.Attr(attr); ok && v == value {
		return el
	}
	for _, child := range el.Children() {
		if found := FindByAttr(child, attr, value); found != nil {
			return found
		}
	}
	return nil
}

// CollectByAttr returns all elements in el's subtree (including el itself,
// depth-first in document order) that carry the attribute attr, regardless
// of its value.
func CollectByAttr(el Element, attr string) []Element {
	if el == nil {
		return nil
	}
	var out []Element
	var walk func(Element)
	walk = func(e Element) {
		if _, ok := e.Attr(attr); ok {
			out = append(out, e)
		}
		for _, child := range e.Children() {
			walk(child)
		}
	}
	walk(el)
	return out
}

// Contains reports whether el's subtree holds an element whose attribute
// attr equals value.
func Contains(el Element, attr, value string) bool {
	return FindByAttr(el, attr, value) != nil
}

// Tasks returns all task elements under el, in document order.
func Tasks(el Element) []Element { return CollectByAttr(el, AttrTaskID) }

// Columns returns all column elements under el, in document order.
func Columns(el Element) []Element { return CollectByAttr(el, AttrColumnID) }

// ColumnID returns el's column identifier: the data-column-id attribute if
// set, otherwise the element's own id, otherwise "".
func ColumnID(el Element) string {
	if el == nil {
		return ""
	}
	if v, ok := el.Attr(AttrColumnID); ok && v != "" {
		return v
	}
	return el.ID()
}

// ColumnOf returns the column element under root that contains the task
// with the given id, or nil if no column holds it.
func ColumnOf(root Element, taskID string) Element {
	for _, col := range Columns(root) {
		if Contains(col, AttrTaskID, taskID) {
			return col
		}
	}
	return nil
}
