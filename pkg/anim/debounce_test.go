package anim

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerTrailing(t *testing.T) {
	d := NewDebouncer(20*time.Millisecond, DebounceOptions{Trailing: true})

	var got atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Call(func() { got.Store(n) })
	}

	time.Sleep(100 * time.Millisecond)
	if v := got.Load(); v != 5 {
		t.Errorf("trailing call = %d, want the last of the burst (5)", v)
	}
}

func TestDebouncerLeading(t *testing.T) {
	d := NewDebouncer(20*time.Millisecond, DebounceOptions{Leading: true})

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Call(func() { calls.Add(1) })
	}

	// Leading-only: exactly one invocation, at the start of the burst.
	if v := calls.Load(); v != 1 {
		t.Errorf("leading edge fired %d times, want 1", v)
	}
	time.Sleep(100 * time.Millisecond)
	if v := calls.Load(); v != 1 {
		t.Errorf("after quiet period: %d invocations, want 1", v)
	}

	// A new burst gets a fresh leading invocation.
	d.Call(func() { calls.Add(1) })
	if v := calls.Load(); v != 2 {
		t.Errorf("second burst leading edge: %d invocations, want 2", v)
	}
}

func TestDebouncerLeadingAndTrailing(t *testing.T) {
	d := NewDebouncer(20*time.Millisecond, DebounceOptions{Leading: true, Trailing: true})

	var calls atomic.Int32
	d.Call(func() { calls.Add(1) }) // leading
	d.Call(func() { calls.Add(1) }) // becomes trailing

	time.Sleep(100 * time.Millisecond)
	if v := calls.Load(); v != 2 {
		t.Errorf("got %d invocations, want leading + trailing = 2", v)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20*time.Millisecond, DebounceOptions{})

	var calls atomic.Int32
	d.Call(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	if v := calls.Load(); v != 0 {
		t.Errorf("cancelled call still fired %d times", v)
	}
}

func TestDebouncerRearmDuringFire(t *testing.T) {
	d := NewDebouncer(20*time.Millisecond, DebounceOptions{Trailing: true})

	var mu sync.Mutex
	var got []string
	record := func(s string) func() {
		return func() {
			mu.Lock()
			got = append(got, s)
			mu.Unlock()
		}
	}

	d.Call(record("first"))

	// Park the quiet-period callback on the lock, then re-arm while it
	// waits: the stale callback must not consume the replacement call or
	// its timer.
	d.mu.Lock()
	time.Sleep(40 * time.Millisecond)
	leading := d.callLocked(record("second"))
	d.mu.Unlock()
	if leading != nil {
		leading()
	}

	// The replacement still has a full quiet period ahead of it.
	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	early := len(got)
	mu.Unlock()
	if early != 0 {
		t.Fatalf("invoked %v before the quiet period elapsed", got)
	}

	time.Sleep(40 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("invocations = %v, want [second]", got)
	}
}

func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour, DebounceOptions{})

	var calls atomic.Int32
	d.Call(func() { calls.Add(1) })
	d.Flush()

	if v := calls.Load(); v != 1 {
		t.Errorf("Flush should invoke the pending call, got %d", v)
	}

	// Nothing left to flush.
	d.Flush()
	if v := calls.Load(); v != 1 {
		t.Errorf("second Flush should be a no-op, got %d", v)
	}
}
