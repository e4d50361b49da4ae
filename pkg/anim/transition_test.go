package anim

import (
	"sync"
	"testing"
	"time"

	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

// recorder collects transition notifications.
type recorder struct {
	mu   sync.Mutex
	got  []*placeholder.Position
	cond chan struct{}
}

func newRecorder() *recorder {
	return &recorder{cond: make(chan struct{}, 16)}
}

func (r *recorder) notify(pos *placeholder.Position) {
	r.mu.Lock()
	r.got = append(r.got, pos)
	r.mu.Unlock()
	r.cond <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.cond:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a notification")
	}
}

func (r *recorder) snapshot() []*placeholder.Position {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*placeholder.Position(nil), r.got...)
}

// fastConfig keeps transition tests quick while preserving the delay
// ordering: hide < move/4 < hover.
func fastConfig() TransitionConfig {
	return TransitionConfig{
		HoverDelay:   40 * time.Millisecond,
		HideDelay:    20 * time.Millisecond,
		MoveDuration: 100 * time.Millisecond,
	}
}

var (
	posA = &placeholder.Position{TaskID: "a", Edge: placeholder.Above, ColumnID: "col"}
	posB = &placeholder.Position{TaskID: "b", Edge: placeholder.Below, ColumnID: "col"}
)

func TestTransitionShowAfterHoverDelay(t *testing.T) {
	rec := newRecorder()
	m := NewTransitionManager(fastConfig(), rec.notify)
	defer m.Cleanup()

	m.Update(posA, false)
	if st := m.State(); st != StateShowing {
		t.Errorf("state = %s, want showing", st)
	}
	if m.Current() != nil {
		t.Error("nothing should be committed before the hover delay")
	}

	rec.wait(t)
	if st := m.State(); st != StateVisible {
		t.Errorf("state after hover delay = %s, want visible", st)
	}
	got := rec.snapshot()
	if len(got) != 1 || !got[0].Equal(posA) {
		t.Errorf("notifications = %v, want [posA]", got)
	}
}

func TestTransitionIdempotentUpdate(t *testing.T) {
	rec := newRecorder()
	m := NewTransitionManager(fastConfig(), rec.notify)
	defer m.Cleanup()

	m.Update(posA, false)
	rec.wait(t)

	// A structurally equal position must not trigger another notification.
	copyA := *posA
	m.Update(&copyA, false)

	time.Sleep(150 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 1 {
		t.Errorf("got %d notifications, want 1", len(got))
	}
	if st := m.State(); st != StateVisible {
		t.Errorf("state = %s, want visible", st)
	}
}

func TestTransitionLatestRequestWins(t *testing.T) {
	rec := newRecorder()
	m := NewTransitionManager(fastConfig(), rec.notify)
	defer m.Cleanup()

	// B arrives before A's hover delay elapses: exactly one notification,
	// for B, never for A.
	m.Update(posA, false)
	time.Sleep(10 * time.Millisecond)
	start := time.Now()
	m.Update(posB, false)

	rec.wait(t)
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Errorf("notification after %s, want a delay measured from the second call", elapsed)
	}

	time.Sleep(150 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 || !got[0].Equal(posB) {
		t.Errorf("notifications = %v, want exactly [posB]", got)
	}
}

func TestTransitionHide(t *testing.T) {
	rec := newRecorder()
	m := NewTransitionManager(fastConfig(), rec.notify)
	defer m.Cleanup()

	m.Update(posA, false)
	rec.wait(t)

	m.Update(nil, false)
	if st := m.State(); st != StateHiding {
		t.Errorf("state = %s, want hiding", st)
	}

	rec.wait(t)
	got := rec.snapshot()
	if len(got) != 2 || got[1] != nil {
		t.Errorf("notifications = %v, want [posA, nil]", got)
	}
	if st := m.State(); st != StateIdle {
		t.Errorf("state = %s, want idle", st)
	}
}

func TestTransitionHideCancelsPendingShow(t *testing.T) {
	rec := newRecorder()
	m := NewTransitionManager(fastConfig(), rec.notify)
	defer m.Cleanup()

	// The placeholder never appeared, so hiding it must notify nothing.
	m.Update(posA, false)
	m.Update(nil, false)

	time.Sleep(150 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("notifications = %v, want none", got)
	}
	if st := m.State(); st != StateIdle {
		t.Errorf("state = %s, want idle", st)
	}
}

func TestTransitionMoveIsFasterThanShow(t *testing.T) {
	cfg := fastConfig()
	rec := newRecorder()
	m := NewTransitionManager(cfg, rec.notify)
	defer m.Cleanup()

	m.Update(posA, false)
	rec.wait(t)

	start := time.Now()
	m.Update(posB, false)
	if st := m.State(); st != StateMoving {
		t.Errorf("state = %s, want moving", st)
	}

	rec.wait(t)
	elapsed := time.Since(start)
	if elapsed >= cfg.HoverDelay {
		t.Errorf("move took %s, should be faster than the %s hover delay", elapsed, cfg.HoverDelay)
	}

	got := rec.snapshot()
	if len(got) != 2 || !got[1].Equal(posB) {
		t.Errorf("notifications = %v, want [posA, posB]", got)
	}
	if st := m.State(); st != StateVisible {
		t.Errorf("state = %s, want visible", st)
	}
}

func TestTransitionImmediate(t *testing.T) {
	rec := newRecorder()
	m := NewTransitionManager(fastConfig(), rec.notify)
	defer m.Cleanup()

	m.Update(posA, true)
	got := rec.snapshot()
	if len(got) != 1 || !got[0].Equal(posA) {
		t.Fatalf("immediate update should notify synchronously, got %v", got)
	}
	if st := m.State(); st != StateVisible {
		t.Errorf("state = %s, want visible", st)
	}

	m.Update(nil, true)
	got = rec.snapshot()
	if len(got) != 2 || got[1] != nil {
		t.Errorf("immediate hide should notify synchronously, got %v", got)
	}
}

func TestTransitionReducedMotionForcesImmediate(t *testing.T) {
	cfg := fastConfig()
	cfg.ReducedMotion = func() bool { return true }

	rec := newRecorder()
	m := NewTransitionManager(cfg, rec.notify)
	defer m.Cleanup()

	m.Update(posA, false)
	if got := rec.snapshot(); len(got) != 1 {
		t.Errorf("reduced motion should bypass the hover delay, got %v", got)
	}
}

func TestTransitionReset(t *testing.T) {
	rec := newRecorder()
	m := NewTransitionManager(fastConfig(), rec.notify)

	m.Update(posA, true)
	m.Reset()

	got := rec.snapshot()
	if len(got) != 2 || got[1] != nil {
		t.Errorf("Reset over a visible placeholder should clear it, got %v", got)
	}
	if st := m.State(); st != StateIdle {
		t.Errorf("state = %s, want idle", st)
	}

	// Reset while idle notifies nothing.
	m.Reset()
	if got := rec.snapshot(); len(got) != 2 {
		t.Errorf("idle Reset should not notify, got %v", got)
	}
}

func TestTransitionResetDuringSlowNotify(t *testing.T) {
	rec := newRecorder()
	slow := func(pos *placeholder.Position) {
		if pos != nil {
			time.Sleep(60 * time.Millisecond)
		}
		rec.notify(pos)
	}
	cfg := fastConfig()
	cfg.HoverDelay = 10 * time.Millisecond
	m := NewTransitionManager(cfg, slow)
	defer m.Cleanup()

	// Let the show commit and park inside the subscriber, then tear the
	// session down while that notification is still in flight. The clear
	// must be the last thing the subscriber sees.
	m.Update(posA, false)
	time.Sleep(30 * time.Millisecond)
	m.Reset()

	rec.wait(t)
	rec.wait(t)
	got := rec.snapshot()
	if len(got) != 2 || !got[0].Equal(posA) || got[1] != nil {
		t.Fatalf("notifications = %v, want [posA, nil] with the clear delivered last", got)
	}
	if m.Current() != nil {
		t.Error("Current() should be nil after Reset")
	}
	if st := m.State(); st != StateIdle {
		t.Errorf("state = %s, want idle", st)
	}
}

func TestTransitionCleanupIsSilent(t *testing.T) {
	rec := newRecorder()
	m := NewTransitionManager(fastConfig(), rec.notify)

	m.Update(posA, false)
	m.Cleanup()

	time.Sleep(150 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("Cleanup must not notify, got %v", got)
	}
	if st := m.State(); st != StateIdle {
		t.Errorf("state = %s, want idle", st)
	}
}
