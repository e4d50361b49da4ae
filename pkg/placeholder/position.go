package placeholder

import (
	"fmt"

	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
)

// Edge says which side of the anchor task the placeholder renders on.
type Edge string

// Placeholder edges.
const (
	Above Edge = "above"
	Below Edge = "below"
)

// Position is the single source of truth for where the insertion marker
// should render. At most one exists per drag gesture at any moment. It is
// never persisted; it lives only until the next pointer event or the end of
// the gesture.
type Position struct {
	TaskID   string `json:"taskId"`
	Edge     Edge   `json:"edge"`
	ColumnID string `json:"columnId"`
}

// Equal reports structural equality. Two equal positions represent the same
// visual marker, so transitions treat them as a no-op.
func (p *Position) Equal(q *Position) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.TaskID == q.TaskID && p.Edge == q.Edge && p.ColumnID == q.ColumnID
}

// String formats the position for logs.
func (p *Position) String() string {
	if p == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s %s in %s", p.Edge, p.TaskID, p.ColumnID)
}

// Bounds is a snapshot of a draggable item's rectangle plus its identifier.
type Bounds struct {
	ID   string    `json:"id"`
	Rect geom.Rect `json:"rect"`
}

// CenterY returns the vertical center of the item, the reference line the
// above/below decision is made against.
func (b Bounds) CenterY() float64 { return b.Rect.CenterY() }
