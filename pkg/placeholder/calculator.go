package placeholder

import (
	"math"

	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
)

// Calculate determines the placeholder position for a pointer over a
// column's items. sorted must be ordered ascending by top edge, as produced
// by Reader.ColumnTaskBounds.
//
// Rules, in order:
//  1. No items: nil. The empty-column case is the caller's to render with a
//     column-level indicator.
//  2. Pointer above the first item's top: above the first item.
//  3. Pointer below the last item's bottom: below the last item.
//  4. Otherwise the item whose center is vertically closest to the pointer
//     wins; equal distances resolve to the later item in scan order. The
//     placeholder goes above that item when the pointer is above its
//     center, below otherwise.
//
// draggedID is skipped during the scan as defense in depth; the dragged
// item should already have been excluded from sorted.
func Calculate(pointer geom.Point, sorted []Bounds, columnID, draggedID string) *Position {
	if len(sorted) == 0 {
		return nil
	}

	first, last := sorted[0], sorted[len(sorted)-1]
	if pointer.Y < first.Rect.Top {
		return &Position{TaskID: first.ID, Edge: Above, ColumnID: columnID}
	}
	if pointer.Y > last.Rect.Bottom {
		return &Position{TaskID: last.ID, Edge: Below, ColumnID: columnID}
	}

	best := -1
	bestDist := math.Inf(1)
	for i, b := range sorted {
		if draggedID != "" && b.ID == draggedID {
			continue
		}
		if d := math.Abs(pointer.Y - b.CenterY()); d <= bestDist {
			best = i
			bestDist = d
		}
	}
	if best == -1 {
		return nil
	}

	return positionAt(pointer, sorted[best], columnID)
}

// positionAt builds the position for a chosen anchor item.
func positionAt(pointer geom.Point, anchor Bounds, columnID string) *Position {
	edge := Below
	if pointer.Y < anchor.CenterY() {
		edge = Above
	}
	return &Position{TaskID: anchor.ID, Edge: edge, ColumnID: columnID}
}
