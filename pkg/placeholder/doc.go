// Package placeholder computes where a drag-and-drop insertion marker should
// render among the items of a column.
//
// The package is the geometric core of the drag engine. Given a pointer
// location and the bounds of a column's items, it decides which item the
// placeholder attaches to and whether it goes above or below that item.
// Degenerate inputs never raise errors: an empty column or an unmatched
// pointer yields a nil position and the caller falls back to a column-level
// indicator.
//
// # Components
//
//   - Reader: extracts item bounds from an element tree, optionally through
//     a short-TTL cache, and returns them sorted by top edge. Every other
//     component relies on that ordering.
//   - Calculate: the reference linear-scan position calculator.
//   - Detector: a binary-search variant for columns with many items, backed
//     by a per-column spatial index. It returns results identical to
//     Calculate; only the time complexity differs.
//   - Validate: confirms a previously computed position still matches the
//     element tree after mutations.
//
// # Tie-breaking
//
// When a pointer is exactly equidistant from two item centers, the later
// item in scan order wins. This is an explicit rule, encoded in both the
// linear and the binary-search paths and locked in by tests.
package placeholder
