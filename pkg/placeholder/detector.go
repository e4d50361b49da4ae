package placeholder

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/cache"
	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
	"github.com/vietanhdev/kirapilot-dnd/pkg/observability"
)

// OptimizedThreshold is the item count at which detection switches from the
// linear scan to the binary search.
const OptimizedThreshold = 50

// Detector is the spatially indexed variant of Calculate for columns with
// many items. A per-column index caches the sorted bounds list behind the
// standard short TTL, so repeated queries within one burst of pointer moves
// pay for a single geometry pass and each query costs O(log n).
//
// Detector results are identical to Calculate for any input; only the time
// complexity differs.
type Detector struct {
	reader *Reader
	index  cache.Store[[]Bounds]
}

// NewDetector creates a detector. A nil reader gets a default cached
// reader; a nil index gets the default in-memory TTL store.
func NewDetector(reader *Reader, index cache.Store[[]Bounds]) *Detector {
	if reader == nil {
		reader = NewReader(nil)
	}
	if index == nil {
		index = cache.NewMemory[[]Bounds]("spatial-index")
	}
	return &Detector{reader: reader, index: index}
}

// Detect computes the placeholder position for pointer over column,
// maintaining the spatial index. draggedID is excluded from the indexed
// bounds and from comparisons.
func (d *Detector) Detect(ctx context.Context, pointer geom.Point, column board.Element, draggedID string) *Position {
	columnID := board.ColumnID(column)
	start := time.Now()

	// The exclusion is baked into the indexed list, so the dragged id is
	// part of the key.
	key := columnID + "\x00" + draggedID
	bounds, ok := d.index.Get(key)
	if !ok {
		bounds = d.reader.ColumnTaskBounds(column, draggedID)
		d.index.Set(key, bounds)
		observability.Collision().OnIndexRebuild(ctx, columnID, len(bounds))
	}

	pos := DetectCollision(pointer, bounds, columnID, draggedID)
	observability.Collision().OnDetect(ctx, columnID, len(bounds), time.Since(start))
	return pos
}

// ClearIndex drops all indexed columns. Safe at any time; the next query
// rebuilds.
func (d *Detector) ClearIndex() { d.index.Clear() }

// Reader returns the geometry reader the detector was built with.
func (d *Detector) Reader() *Reader { return d.reader }

// DetectCollision is the pure detection function: identical semantics to
// Calculate, with a binary search once the list reaches OptimizedThreshold.
// sorted must be ordered ascending by top edge.
func DetectCollision(pointer geom.Point, sorted []Bounds, columnID, draggedID string) *Position {
	if len(sorted) < OptimizedThreshold {
		return Calculate(pointer, sorted, columnID, draggedID)
	}

	// The search cannot express "above everything" or "below everything",
	// so the edge cases come first, exactly as in the linear path.
	first, last := sorted[0], sorted[len(sorted)-1]
	if pointer.Y < first.Rect.Top {
		return &Position{TaskID: first.ID, Edge: Above, ColumnID: columnID}
	}
	if pointer.Y > last.Rect.Bottom {
		return &Position{TaskID: last.ID, Edge: Below, ColumnID: columnID}
	}

	dist := func(i int) float64 { return math.Abs(pointer.Y - sorted[i].CenterY()) }

	// Lower bound on center position, then resolve against the left
	// neighbor with the shared tie rule: equal distances go to the later
	// item.
	lo := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].CenterY() >= pointer.Y
	})
	var best int
	switch {
	case lo == len(sorted):
		best = lo - 1
	case lo == 0:
		best = 0
	case dist(lo) <= dist(lo-1):
		best = lo
	default:
		best = lo - 1
	}

	// Extend across a plateau of equal centers so ties still resolve to
	// the last item in scan order.
	for best+1 < len(sorted) && dist(best+1) <= dist(best) {
		best++
	}

	// The dragged item should not be in the list at all; if it still is
	// and wins, fall back to the linear scan with its explicit skip.
	if draggedID != "" && sorted[best].ID == draggedID {
		return Calculate(pointer, sorted, columnID, draggedID)
	}

	return positionAt(pointer, sorted[best], columnID)
}
