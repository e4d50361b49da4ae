// Package pkg provides the core libraries of the kiradnd placeholder engine.
//
// # Overview
//
// kiradnd decides where the drop indicator belongs while a task card is
// dragged across a kanban board. The pkg directory is organized into three
// main areas:
//
//  1. Geometry and board model - value types and the element tree
//  2. Detection - nearest-center placeholder calculation and collision
//     adaptation, with a spatially indexed fast path for large columns
//  3. Runtime - transition smoothing, frame throttling, caching, and the
//     engine that composes everything
//
// # Architecture
//
// The typical data flow during a drag:
//
//	Pointer event
//	     ↓
//	[placeholder] Reader (cached element geometry)
//	     ↓
//	[collision] Adapter (column under pointer)
//	     ↓
//	[placeholder] Calculate / DetectCollision (anchor task + edge)
//	     ↓
//	[anim] TransitionManager (flicker suppression, latest-wins)
//	     ↓
//	Subscriber notification (render the placeholder)
//
// # Quick Start
//
// Build a board from a fixture and run the engine:
//
//	import (
//	    "context"
//	    "github.com/vietanhdev/kirapilot-dnd/pkg/board"
//	    "github.com/vietanhdev/kirapilot-dnd/pkg/engine"
//	    "github.com/vietanhdev/kirapilot-dnd/pkg/geom"
//	)
//
//	root, _ := fixture.Build()
//	eng := engine.New(root, engine.Config{}, func(pos *placeholder.Position) {
//	    render(pos)
//	})
//	defer eng.Cleanup()
//
//	eng.StartDrag(ctx, "task-7")
//	eng.Move(ctx, geom.Point{X: 140, Y: 260})
//	eng.EndDrag(ctx)
//
// # Main Packages
//
// [geom] - Points and rectangles in screen space, with the derived
// measurements (centers, distances, containment) detection is built on.
//
// [board] - The element tree abstraction over the host UI: attribute
// lookup, column/task traversal, and declarative TOML/JSON fixtures.
//
// [placeholder] - The detection core. Calculate is the linear
// nearest-center scan; DetectCollision switches to a binary search over
// the sorted bounds once a column crosses the size threshold. Reader
// captures and caches element geometry; Validate checks positions against
// mutated boards.
//
// [collision] - Adapts detection to the pluggable collision contract used
// by drag frameworks: active item + droppable set + pointer in, ranked
// matches out.
//
// [anim] - Timing utilities: the placeholder transition state machine,
// debouncing, frame scheduling, and staggered animation queues.
//
// [cache] - Generic short-TTL stores backing geometry reads and the
// spatial index.
//
// [engine] - Composes the above into a drag session host with frame
// throttling and performance tracking.
//
// [perf] - Latency monitoring against the 16ms frame budget.
//
// [errors] - Structured error codes shared by the CLI and the debug API.
//
// [observability] - Pluggable hooks for detection, transition, and cache
// events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/placeholder  # Detection core only
//	go test -run Example       # Examples only
//
// [geom]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/geom
// [board]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/board
// [placeholder]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/placeholder
// [collision]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/collision
// [anim]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/anim
// [cache]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/cache
// [engine]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/engine
// [perf]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/perf
// [errors]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/errors
// [observability]: https://pkg.go.dev/github.com/vietanhdev/kirapilot-dnd/pkg/observability
package pkg
