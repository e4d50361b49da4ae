package perf

import (
	"testing"
	"time"
)

func TestStatsEmpty(t *testing.T) {
	m := NewMonitor()
	s := m.Stats()
	if s.Count != 0 || s.Average != 0 || s.P95 != 0 {
		t.Errorf("empty monitor stats = %+v, want zeros", s)
	}
	if !m.Acceptable() {
		t.Error("empty monitor should be acceptable")
	}
}

func TestStatsBasics(t *testing.T) {
	m := NewMonitor()
	for _, ms := range []int{1, 2, 3, 4, 5} {
		m.Record(time.Duration(ms) * time.Millisecond)
	}

	s := m.Stats()
	if s.Count != 5 {
		t.Errorf("Count = %d, want 5", s.Count)
	}
	if s.Average != 3*time.Millisecond {
		t.Errorf("Average = %s, want 3ms", s.Average)
	}
	if s.Min != time.Millisecond || s.Max != 5*time.Millisecond {
		t.Errorf("Min/Max = %s/%s, want 1ms/5ms", s.Min, s.Max)
	}
	// Nearest rank: ceil(0.95*5) = 5th value.
	if s.P95 != 5*time.Millisecond {
		t.Errorf("P95 = %s, want 5ms", s.P95)
	}
}

func TestWindowEviction(t *testing.T) {
	m := NewMonitor()

	// Fill beyond the window with a large value, then overwrite with small
	// ones; the large values must eventually age out.
	for i := 0; i < sampleWindow; i++ {
		m.Record(100 * time.Millisecond)
	}
	for i := 0; i < sampleWindow; i++ {
		m.Record(time.Millisecond)
	}

	s := m.Stats()
	if s.Count != sampleWindow {
		t.Errorf("Count = %d, want %d", s.Count, sampleWindow)
	}
	if s.Max != time.Millisecond {
		t.Errorf("Max = %s, want 1ms after eviction", s.Max)
	}
}

func TestAcceptable(t *testing.T) {
	m := NewMonitor()
	for i := 0; i < 100; i++ {
		m.Record(2 * time.Millisecond)
	}
	if !m.Acceptable() {
		t.Error("2ms p95 should be acceptable")
	}

	// Push the p95 over the frame budget: more than 5% slow samples.
	for i := 0; i < 10; i++ {
		m.Record(20 * time.Millisecond)
	}
	if m.Acceptable() {
		t.Error("p95 over 16ms should not be acceptable")
	}
}

func TestReset(t *testing.T) {
	m := NewMonitor()
	m.Record(time.Millisecond)
	m.Reset()
	if s := m.Stats(); s.Count != 0 {
		t.Errorf("Count after Reset = %d, want 0", s.Count)
	}
}

func TestTrack(t *testing.T) {
	m := NewMonitor()
	m.Track(func() {})
	if s := m.Stats(); s.Count != 1 {
		t.Errorf("Count after Track = %d, want 1", s.Count)
	}
}
