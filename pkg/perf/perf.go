// Package perf measures placeholder calculation latency against the 60fps
// frame budget.
//
// The monitor is a diagnostic oracle, not a control input: the engine and
// the bench command read its report, nothing changes behavior based on it.
package perf

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// FrameBudget is the per-frame time budget at 60fps.
const FrameBudget = 16 * time.Millisecond

// sampleWindow is how many recent measurements the monitor retains.
const sampleWindow = 100

// Monitor records the duration of recent calculations in a fixed-size ring.
type Monitor struct {
	mu      sync.Mutex
	samples []time.Duration
	next    int
	full    bool
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{samples: make([]time.Duration, sampleWindow)}
}

// Record adds a measured duration, evicting the oldest once the window
// is full.
func (m *Monitor) Record(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples[m.next] = d
	m.next++
	if m.next == len(m.samples) {
		m.next = 0
		m.full = true
	}
}

// Track runs fn, records how long it took, and returns the duration.
func (m *Monitor) Track(fn func()) time.Duration {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	m.Record(elapsed)
	return elapsed
}

// Reset discards all recorded samples.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next = 0
	m.full = false
}

// Stats is a summary of the retained samples.
type Stats struct {
	Count   int           `json:"count"`
	Average time.Duration `json:"average"`
	Min     time.Duration `json:"min"`
	Max     time.Duration `json:"max"`
	P95     time.Duration `json:"p95"`
}

// String formats the stats for log output.
func (s Stats) String() string {
	return fmt.Sprintf("n=%d avg=%s min=%s max=%s p95=%s",
		s.Count, s.Average, s.Min, s.Max, s.P95)
}

// Stats returns a summary of the current window. A monitor with no samples
// returns a zero Stats.
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	window := m.window()
	m.mu.Unlock()

	if len(window) == 0 {
		return Stats{}
	}

	var sum time.Duration
	min, max := window[0], window[0]
	for _, d := range window {
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	sorted := slices.Clone(window)
	slices.Sort(sorted)

	return Stats{
		Count:   len(window),
		Average: sum / time.Duration(len(window)),
		Min:     min,
		Max:     max,
		P95:     percentile(sorted, 95),
	}
}

// Acceptable reports whether the 95th percentile fits inside the 60fps
// frame budget.
func (m *Monitor) Acceptable() bool {
	s := m.Stats()
	if s.Count == 0 {
		return true
	}
	return s.P95 < FrameBudget
}

// window returns the live samples in insertion order. Caller holds the lock.
func (m *Monitor) window() []time.Duration {
	if m.full {
		out := make([]time.Duration, 0, len(m.samples))
		out = append(out, m.samples[m.next:]...)
		out = append(out, m.samples[:m.next]...)
		return out
	}
	return slices.Clone(m.samples[:m.next])
}

// percentile returns the p-th percentile of sorted samples using the
// nearest-rank method.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
