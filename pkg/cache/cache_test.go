package cache

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for TTL tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory[string]("test")

	if _, ok := m.Get("a"); ok {
		t.Error("Get on empty store should miss")
	}

	m.Set("a", "hello")
	v, ok := m.Get("a")
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if v != "hello" {
		t.Errorf("Get = %q, want %q", v, "hello")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	clock := newFakeClock()
	m := NewMemory[int]("test", WithNow[int](clock.now))

	m.Set("a", 42)

	// Just under the TTL: still fresh.
	clock.advance(99 * time.Millisecond)
	if v, ok := m.Get("a"); !ok || v != 42 {
		t.Errorf("Get before TTL = (%v, %v), want (42, true)", v, ok)
	}

	// At the TTL boundary: expired.
	clock.advance(time.Millisecond)
	if _, ok := m.Get("a"); ok {
		t.Error("Get at TTL should miss")
	}

	// Expired entry should have been evicted.
	if m.Len() != 0 {
		t.Errorf("Len after expiry = %d, want 0", m.Len())
	}
}

func TestMemoryCustomTTL(t *testing.T) {
	clock := newFakeClock()
	m := NewMemory[int]("test", WithTTL[int](time.Second), WithNow[int](clock.now))

	m.Set("a", 1)
	clock.advance(500 * time.Millisecond)
	if _, ok := m.Get("a"); !ok {
		t.Error("entry should survive half of a custom TTL")
	}
	clock.advance(time.Second)
	if _, ok := m.Get("a"); ok {
		t.Error("entry should expire after custom TTL")
	}
}

func TestMemoryDeleteAndClear(t *testing.T) {
	m := NewMemory[int]("test")

	m.Set("a", 1)
	m.Set("b", 2)
	m.Delete("a")
	if _, ok := m.Get("a"); ok {
		t.Error("Get after Delete should miss")
	}
	if _, ok := m.Get("b"); !ok {
		t.Error("Delete should not affect other keys")
	}

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", m.Len())
	}
	if _, ok := m.Get("b"); ok {
		t.Error("Get after Clear should miss")
	}
}

func TestMemorySetRefreshesTimestamp(t *testing.T) {
	clock := newFakeClock()
	m := NewMemory[int]("test", WithNow[int](clock.now))

	m.Set("a", 1)
	clock.advance(80 * time.Millisecond)
	m.Set("a", 2)
	clock.advance(80 * time.Millisecond)

	// 160ms after the first write but only 80ms after the second.
	v, ok := m.Get("a")
	if !ok {
		t.Fatal("rewritten entry should be fresh")
	}
	if v != 2 {
		t.Errorf("Get = %d, want 2", v)
	}
}

func TestNull(t *testing.T) {
	n := NewNull[string]()

	n.Set("key", "value")
	if _, ok := n.Get("key"); ok {
		t.Error("Null store should never hit")
	}
	if n.Len() != 0 {
		t.Error("Null store should report zero length")
	}

	// Delete and Clear are no-ops but must not panic.
	n.Delete("key")
	n.Clear()
}
