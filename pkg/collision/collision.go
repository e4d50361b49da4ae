// Package collision adapts the placeholder calculator to a generic
// pointer-based collision detection contract.
//
// The contract mirrors what pluggable drag-and-drop frameworks expect: the
// caller hands over the active (dragged) item, the set of droppable
// containers with their rectangles, and the pointer location; the adapter
// returns a ranked list of matches. Containers tagged with data-column-id
// get placeholder positions computed inside them; everything else is the
// fallback detector's business.
package collision

import (
	"context"
	"math"
	"sort"

	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
	"github.com/vietanhdev/kirapilot-dnd/pkg/observability"
	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

// Active identifies the item being dragged.
type Active struct {
	ID   string    `json:"id"`
	Rect geom.Rect `json:"rect"`
}

// Droppable is one registered drop target. Element is the container's node
// in the host tree; it may be nil for targets that are not columns, which
// only the fallback detector can match.
type Droppable struct {
	ID      string        `json:"id"`
	Rect    geom.Rect     `json:"rect"`
	Element board.Element `json:"-"`
}

// Args is the input to a detection pass.
type Args struct {
	Active     Active               `json:"active"`
	Droppables map[string]Droppable `json:"droppables"`
	Pointer    geom.Point           `json:"pointer"`
}

// Data carries the column-specific results attached to a match.
type Data struct {
	// Position is where the placeholder should render inside the matched
	// column, nil when the column is empty.
	Position *placeholder.Position `json:"position,omitempty"`

	// SameColumn is true when the dragged item's current column is the
	// matched column; hosts render same-column reorders differently from
	// cross-column moves.
	SameColumn bool `json:"sameColumn"`
}

// Match is one detection result, best first.
type Match struct {
	ID   string `json:"id"`
	Data *Data  `json:"data,omitempty"`
}

// DetectFunc is the pluggable detector shape shared with fallbacks.
type DetectFunc func(ctx context.Context, args Args) []Match

// Adapter selects the column under the pointer and computes the placeholder
// inside it. When no column contains the pointer it defers entirely to the
// fallback detector; it never guesses a column.
type Adapter struct {
	detector *placeholder.Detector
	fallback DetectFunc
}

// NewAdapter creates an adapter. A nil detector gets defaults; fallback may
// be nil, in which case unmatched pointers produce no matches.
func NewAdapter(detector *placeholder.Detector, fallback DetectFunc) *Adapter {
	if detector == nil {
		detector = placeholder.NewDetector(nil, nil)
	}
	return &Adapter{detector: detector, fallback: fallback}
}

// Detect implements the collision detection contract.
func (a *Adapter) Detect(ctx context.Context, args Args) []Match {
	winner, ok := a.pickColumn(args)
	if !ok {
		observability.Collision().OnFallback(ctx)
		if a.fallback != nil {
			return a.fallback(ctx, args)
		}
		return nil
	}

	pos := a.detector.Detect(ctx, args.Pointer, winner.Element, args.Active.ID)
	same := board.Contains(winner.Element, board.AttrTaskID, args.Active.ID)

	return []Match{{
		ID:   winner.ID,
		Data: &Data{Position: pos, SameColumn: same},
	}}
}

// pickColumn returns the column droppable whose rect contains the pointer.
// With overlapping layouts more than one column can contain it; the one
// with the geometrically closest center wins, with the id as a final
// deterministic tie-break.
func (a *Adapter) pickColumn(args Args) (Droppable, bool) {
	type candidate struct {
		d    Droppable
		dist float64
	}
	var candidates []candidate
	for _, d := range args.Droppables {
		if d.Element == nil {
			continue
		}
		if _, tagged := d.Element.Attr(board.AttrColumnID); !tagged {
			continue
		}
		if !d.Rect.Contains(args.Pointer) {
			continue
		}
		candidates = append(candidates, candidate{
			d:    d,
			dist: args.Pointer.DistanceTo(d.Rect.Center()),
		})
	}
	if len(candidates) == 0 {
		return Droppable{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if math.Abs(candidates[i].dist-candidates[j].dist) > 1e-9 {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].d.ID < candidates[j].d.ID
	})
	return candidates[0].d, true
}

// DroppablesFrom builds the droppable set for every column under root,
// keyed by column id. Hosts that manage their own registration can skip
// this helper.
func DroppablesFrom(root board.Element) map[string]Droppable {
	out := make(map[string]Droppable)
	for _, col := range board.Columns(root) {
		id := board.ColumnID(col)
		out[id] = Droppable{ID: id, Rect: col.Rect(), Element: col}
	}
	return out
}
