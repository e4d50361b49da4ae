package placeholder_test

import (
	"fmt"

	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

func ExampleCalculate() {
	// Three stacked cards, 40 tall, 10 apart.
	bounds := []placeholder.Bounds{
		{ID: "write-docs", Rect: geom.RectAt(0, 0, 200, 40)},
		{ID: "review-pr", Rect: geom.RectAt(0, 50, 200, 40)},
		{ID: "ship-it", Rect: geom.RectAt(0, 100, 200, 40)},
	}

	// Pointer hovering just under the second card's center.
	pos := placeholder.Calculate(geom.Point{X: 100, Y: 75}, bounds, "in-progress", "")
	fmt.Println(pos)

	// Pointer above the whole stack.
	pos = placeholder.Calculate(geom.Point{X: 100, Y: -20}, bounds, "in-progress", "")
	fmt.Println(pos)

	// An empty column has no per-item placeholder.
	pos = placeholder.Calculate(geom.Point{X: 100, Y: 75}, nil, "done", "")
	fmt.Println(pos)

	// Output:
	// below review-pr in in-progress
	// above write-docs in in-progress
	// <none>
}
