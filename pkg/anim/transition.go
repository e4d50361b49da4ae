package anim

import (
	"context"
	"sync"
	"time"

	"github.com/vietanhdev/kirapilot-dnd/pkg/observability"
	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

// State names the phases of the placeholder transition machine.
type State string

// Transition states.
const (
	// StateIdle: no placeholder visible and none pending.
	StateIdle State = "idle"

	// StateShowing: a hover-delay timer is pending before first display.
	StateShowing State = "showing"

	// StateVisible: a placeholder is committed and displayed.
	StateVisible State = "visible"

	// StateHiding: a hide-delay timer is pending before clearing.
	StateHiding State = "hiding"

	// StateMoving: a short timer is pending between two visible positions.
	StateMoving State = "moving"
)

// Transition timing defaults.
const (
	// DefaultHoverDelay is how long a new placeholder waits before first
	// appearing, filtering out flicker from pointer jitter.
	DefaultHoverDelay = 100 * time.Millisecond

	// DefaultHideDelay is how long a cleared placeholder lingers before
	// disappearing.
	DefaultHideDelay = 50 * time.Millisecond

	// DefaultMoveDuration is the nominal position transition duration;
	// moves between visible positions apply after a quarter of it, so
	// moves feel snappier than initial appearance.
	DefaultMoveDuration = 200 * time.Millisecond
)

// TransitionConfig tunes the manager. Zero durations select the defaults.
type TransitionConfig struct {
	HoverDelay   time.Duration
	HideDelay    time.Duration
	MoveDuration time.Duration

	// ReducedMotion, when it reports true, forces every update to apply
	// immediately. Hosts wire this to the platform's reduced-motion
	// preference.
	ReducedMotion func() bool
}

// withDefaults fills in zero fields.
func (c TransitionConfig) withDefaults() TransitionConfig {
	if c.HoverDelay == 0 {
		c.HoverDelay = DefaultHoverDelay
	}
	if c.HideDelay == 0 {
		c.HideDelay = DefaultHideDelay
	}
	if c.MoveDuration == 0 {
		c.MoveDuration = DefaultMoveDuration
	}
	return c
}

// TransitionManager owns the committed placeholder position and smooths the
// raw calculator output before it reaches the renderer: brief hovers do not
// flash a placeholder, brief gaps do not hide one, and rapid position
// changes collapse into the latest.
//
// Ordering guarantee: the most recently requested position always wins.
// Every update bumps a generation counter and cancels the pending timer, so
// a stale timer callback that already fired can never apply. Commits are
// stamped with a sequence number under the state lock and delivered behind
// a separate dispatch mutex, so a notification for an older commit can
// never land after a newer one even when the goroutines race between
// commit and delivery.
type TransitionManager struct {
	mu      sync.Mutex
	cfg     TransitionConfig
	state   State
	current *placeholder.Position // committed (visible) position
	target  *placeholder.Position // requested position a timer is waiting on
	timer   *time.Timer
	gen     uint64
	seq     uint64 // commit counter, guarded by mu
	notify  func(*placeholder.Position)

	notifyMu  sync.Mutex
	delivered uint64 // highest delivered commit, guarded by notifyMu
}

// NewTransitionManager creates a manager in the idle state. notify receives
// every committed change: a position when the placeholder should render,
// nil when it should clear. notify may be called from a timer goroutine.
func NewTransitionManager(cfg TransitionConfig, notify func(*placeholder.Position)) *TransitionManager {
	if notify == nil {
		notify = func(*placeholder.Position) {}
	}
	return &TransitionManager{
		cfg:    cfg.withDefaults(),
		state:  StateIdle,
		notify: notify,
	}
}

// State returns the current transition state.
func (m *TransitionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the committed position, nil when none is visible.
func (m *TransitionManager) Current() *placeholder.Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Update requests a new placeholder position; nil requests hiding.
// immediate bypasses all delays, as does an active reduced-motion
// preference. Structurally equal repeats of the latest request are no-ops.
func (m *TransitionManager) Update(pos *placeholder.Position, immediate bool) {
	m.mu.Lock()

	if m.cfg.ReducedMotion != nil && m.cfg.ReducedMotion() {
		immediate = true
	}

	// Compare against whatever would apply if no further updates arrived:
	// the pending target while a timer runs, the committed position
	// otherwise.
	latest := m.current
	if m.timer != nil {
		latest = m.target
	}
	if pos.Equal(latest) {
		m.mu.Unlock()
		return
	}

	m.cancelTimerLocked()

	if immediate {
		m.applyLocked(pos)
		return // applyLocked unlocks
	}

	switch {
	case pos == nil && m.current == nil:
		// A pending show that never displayed: cancel silently.
		m.setStateLocked(StateIdle)
		m.target = nil
		m.mu.Unlock()

	case pos == nil:
		m.target = nil
		m.setStateLocked(StateHiding)
		m.scheduleLocked(nil, m.cfg.HideDelay)
		m.mu.Unlock()

	case m.current == nil:
		m.target = pos
		m.setStateLocked(StateShowing)
		m.scheduleLocked(pos, m.cfg.HoverDelay)
		m.mu.Unlock()

	default:
		m.target = pos
		m.setStateLocked(StateMoving)
		m.scheduleLocked(pos, m.cfg.MoveDuration/4)
		m.mu.Unlock()
	}
}

// Reset cancels any pending transition and forces idle. If a placeholder
// was visible the listener is told to clear it.
func (m *TransitionManager) Reset() {
	m.mu.Lock()
	m.cancelTimerLocked()
	wasVisible := m.current != nil
	m.current = nil
	m.target = nil
	m.setStateLocked(StateIdle)
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	if wasVisible {
		m.deliver(seq, nil)
	} else {
		m.suppress(seq)
	}
}

// Cleanup cancels timers without notifying. Use on host teardown, when the
// listener is already gone.
func (m *TransitionManager) Cleanup() {
	m.mu.Lock()
	m.cancelTimerLocked()
	m.current = nil
	m.target = nil
	m.state = StateIdle
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	m.suppress(seq)
}

// applyLocked commits pos synchronously. Takes the lock held, releases it,
// then delivers the notification.
func (m *TransitionManager) applyLocked(pos *placeholder.Position) {
	m.current = pos
	m.target = pos
	if pos == nil {
		m.setStateLocked(StateIdle)
	} else {
		m.setStateLocked(StateVisible)
	}
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	m.deliver(seq, pos)
}

// deliver sends a committed change to the subscriber unless a newer commit
// has already been delivered. Commit order is decided under mu; this
// enforces the same order on deliveries, dropping any that arrive late.
func (m *TransitionManager) deliver(seq uint64, pos *placeholder.Position) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	if seq <= m.delivered {
		return
	}
	m.delivered = seq

	observability.Transition().OnNotify(context.Background(), pos != nil)
	m.notify(pos)
}

// suppress marks seq delivered without notifying, invalidating any older
// commit still on its way to the subscriber.
func (m *TransitionManager) suppress(seq uint64) {
	m.notifyMu.Lock()
	if seq > m.delivered {
		m.delivered = seq
	}
	m.notifyMu.Unlock()
}

// scheduleLocked arms the transition timer for pos after delay. Caller
// holds the lock.
func (m *TransitionManager) scheduleLocked(pos *placeholder.Position, delay time.Duration) {
	g := m.gen
	m.timer = time.AfterFunc(delay, func() {
		m.mu.Lock()
		if m.gen != g {
			// A newer request superseded this timer.
			m.mu.Unlock()
			return
		}
		m.timer = nil
		m.applyLocked(pos)
	})
}

// cancelTimerLocked stops the pending timer and invalidates any callback
// already in flight. Caller holds the lock.
func (m *TransitionManager) cancelTimerLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// setStateLocked records a state change and reports it. Caller holds the
// lock.
func (m *TransitionManager) setStateLocked(next State) {
	if m.state == next {
		return
	}
	observability.Transition().OnStateChange(context.Background(), string(m.state), string(next))
	m.state = next
}
