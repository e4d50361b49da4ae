// Package engine wires the drag-and-drop subsystem into a single runtime
// host: geometry reading, collision detection, transition smoothing, frame
// throttling, and performance tracking behind one API.
//
// # Architecture
//
// A drag session flows through four stages:
//
//  1. Read: element geometry is captured and cached ([placeholder.Reader])
//  2. Detect: the column under the pointer and the placeholder position
//     inside it are computed ([collision.Adapter])
//  3. Smooth: raw positions pass through the transition state machine so
//     the rendered placeholder does not flicker ([anim.TransitionManager])
//  4. Notify: committed changes reach the subscriber callback
//
// Pointer moves are frame-throttled: bursts of Move calls collapse to one
// detection pass per frame interval, with the latest pointer winning.
//
// # Usage
//
// Create an engine over a board tree and subscribe to placeholder changes:
//
//	eng := engine.New(root, engine.Config{Logger: logger}, func(pos *placeholder.Position) {
//	    render(pos)
//	})
//	defer eng.Cleanup()
//
//	if err := eng.StartDrag(ctx, "task-7"); err != nil {
//	    return err
//	}
//	eng.Move(ctx, geom.Point{X: 140, Y: 260}) // repeat per pointer event
//	eng.EndDrag(ctx)
package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vietanhdev/kirapilot-dnd/pkg/anim"
	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/collision"
	"github.com/vietanhdev/kirapilot-dnd/pkg/errors"
	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
	"github.com/vietanhdev/kirapilot-dnd/pkg/perf"
	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

// Config tunes the engine. The zero value is usable: default transition
// delays, ~60fps throttling, no fallback detector, and a discarding logger.
type Config struct {
	// Transition tunes the placeholder show/hide/move delays.
	Transition anim.TransitionConfig

	// FrameInterval is the minimum spacing between detection passes.
	// Zero selects [anim.DefaultFrameInterval].
	FrameInterval time.Duration

	// Fallback handles pointers outside every column. Nil means such
	// pointers simply clear the placeholder.
	Fallback collision.DetectFunc

	// Logger receives per-pass debug output. Nil discards.
	Logger *log.Logger
}

// Engine is the runtime host for one board. It is safe for concurrent use;
// a single drag session is active at a time.
type Engine struct {
	logger      *log.Logger
	adapter     *collision.Adapter
	detector    *placeholder.Detector
	transitions *anim.TransitionManager
	frames      *anim.FrameScheduler
	monitor     *perf.Monitor

	mu        sync.Mutex
	root      board.Element
	draggedID string
	dragging  bool
}

// New creates an engine over root. notify receives every committed
// placeholder change: a position to render, nil to clear. notify may be
// called from a timer goroutine.
func New(root board.Element, cfg Config, notify func(*placeholder.Position)) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	interval := cfg.FrameInterval
	if interval == 0 {
		interval = anim.DefaultFrameInterval
	}
	detector := placeholder.NewDetector(nil, nil)
	return &Engine{
		logger:      logger,
		adapter:     collision.NewAdapter(detector, cfg.Fallback),
		detector:    detector,
		transitions: anim.NewTransitionManager(cfg.Transition, notify),
		frames:      anim.NewFrameScheduler(interval),
		monitor:     perf.NewMonitor(),
		root:        root,
	}
}

// StartDrag begins a session for the given task. Any previous session is
// reset first, clearing a visible placeholder.
func (e *Engine) StartDrag(ctx context.Context, draggedID string) error {
	if draggedID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "dragged task id is required")
	}

	e.mu.Lock()
	root := e.root
	e.mu.Unlock()
	if !board.Contains(root, board.AttrTaskID, draggedID) {
		return errors.New(errors.ErrCodeTaskNotFound, "task %q is not on the board", draggedID)
	}

	e.frames.Cancel()
	e.transitions.Reset()
	e.detector.ClearIndex()

	e.mu.Lock()
	e.draggedID = draggedID
	e.dragging = true
	e.mu.Unlock()

	e.logger.Debug("drag started", "task", draggedID)
	return nil
}

// Move reports a pointer position during a drag. Calls are frame-throttled:
// within one interval only the latest pointer runs a detection pass. Moves
// outside a session are ignored.
func (e *Engine) Move(ctx context.Context, pointer geom.Point) {
	e.mu.Lock()
	if !e.dragging {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.frames.Request(func() {
		e.mu.Lock()
		if !e.dragging {
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()
		e.step(ctx, pointer)
	})
}

// MoveNow runs a detection pass synchronously, bypassing the frame
// scheduler, and returns the raw matches. The transition machine still
// smooths what the subscriber sees.
func (e *Engine) MoveNow(ctx context.Context, pointer geom.Point) []collision.Match {
	e.mu.Lock()
	if !e.dragging {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	return e.step(ctx, pointer)
}

// step runs one detection pass and feeds the transition machine.
func (e *Engine) step(ctx context.Context, pointer geom.Point) []collision.Match {
	e.mu.Lock()
	root := e.root
	draggedID := e.draggedID
	e.mu.Unlock()

	var matches []collision.Match
	elapsed := e.monitor.Track(func() {
		args := collision.Args{
			Active:     collision.Active{ID: draggedID},
			Droppables: collision.DroppablesFrom(root),
			Pointer:    pointer,
		}
		matches = e.adapter.Detect(ctx, args)
	})

	var pos *placeholder.Position
	if len(matches) > 0 && matches[0].Data != nil {
		pos = matches[0].Data.Position
	}
	e.transitions.Update(pos, false)

	e.logger.Debug("detection pass",
		"pointer", pointer,
		"position", pos,
		"duration", elapsed)
	return matches
}

// EndDrag finishes the session. The placeholder is cleared (notifying the
// subscriber if one was visible) and per-drag caches are dropped.
func (e *Engine) EndDrag(ctx context.Context) {
	e.mu.Lock()
	wasDragging := e.dragging
	draggedID := e.draggedID
	e.dragging = false
	e.draggedID = ""
	e.mu.Unlock()

	e.frames.Cancel()
	e.transitions.Reset()
	e.detector.ClearIndex()
	e.detector.Reader().Clear()

	if wasDragging {
		e.logger.Debug("drag ended", "task", draggedID)
	}
}

// SetBoard swaps the board tree, invalidating all cached geometry. Call
// after layout changes.
func (e *Engine) SetBoard(root board.Element) {
	e.mu.Lock()
	e.root = root
	e.mu.Unlock()
	e.detector.ClearIndex()
	e.detector.Reader().Clear()
}

// Current returns the committed placeholder position, nil when hidden.
func (e *Engine) Current() *placeholder.Position { return e.transitions.Current() }

// State returns the transition state.
func (e *Engine) State() anim.State { return e.transitions.State() }

// Stats returns detection pass timing statistics.
func (e *Engine) Stats() perf.Stats { return e.monitor.Stats() }

// Acceptable reports whether detection is staying within the frame budget.
func (e *Engine) Acceptable() bool { return e.monitor.Acceptable() }

// Cleanup tears the engine down without notifying the subscriber.
func (e *Engine) Cleanup() {
	e.frames.Cancel()
	e.transitions.Cleanup()
	e.mu.Lock()
	e.dragging = false
	e.draggedID = ""
	e.mu.Unlock()
}
