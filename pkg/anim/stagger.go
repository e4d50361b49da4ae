package anim

import (
	"sync"
	"time"
)

// Stagger timing defaults.
const (
	// DefaultStaggerDelay is the per-item offset between queued animations.
	DefaultStaggerDelay = 50 * time.Millisecond

	// DefaultBatchBuffer is the settling time after a batch's longest
	// delay before the next batch may start.
	DefaultBatchBuffer = 50 * time.Millisecond
)

// StaggerConfig tunes the queue. Zero durations select the defaults;
// BaseDelay may legitimately be zero.
type StaggerConfig struct {
	BaseDelay    time.Duration
	StaggerDelay time.Duration
	BatchBuffer  time.Duration
}

// withDefaults fills in zero fields.
func (c StaggerConfig) withDefaults() StaggerConfig {
	if c.StaggerDelay == 0 {
		c.StaggerDelay = DefaultStaggerDelay
	}
	if c.BatchBuffer == 0 {
		c.BatchBuffer = DefaultBatchBuffer
	}
	return c
}

// staggerItem is one named animation callback.
type staggerItem struct {
	id string
	fn func()
}

// Stagger sequences named animation callbacks with incremental delays:
// the n-th animation added to a batch fires after BaseDelay + n*StaggerDelay,
// so animations run in registration order with increasing offsets.
//
// Re-adding an id removes the prior pending entry first; the last write
// wins. Once a batch has begun dispatching, newly added animations are held
// until the batch's longest delay plus a buffer has elapsed, preventing
// cross-batch interleaving.
type Stagger struct {
	mu         sync.Mutex
	cfg        StaggerConfig
	timers     map[string]*time.Timer
	queueLen   int
	batchMax   time.Duration
	dispatched bool
	held       []staggerItem
	batchTimer *time.Timer
	gen        uint64
}

// NewStagger creates an empty queue.
func NewStagger(cfg StaggerConfig) *Stagger {
	return &Stagger{
		cfg:    cfg.withDefaults(),
		timers: make(map[string]*time.Timer),
	}
}

// Add queues the named animation. Its delay grows with the current queue
// length, preserving registration order.
func (s *Stagger) Add(id string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(staggerItem{id: id, fn: fn})
}

// addLocked inserts one item; caller holds the lock.
func (s *Stagger) addLocked(item staggerItem) {
	// Last write wins: drop any pending entry under the same id.
	s.cancelScheduledLocked(item.id)
	for i, h := range s.held {
		if h.id == item.id {
			s.held = append(s.held[:i], s.held[i+1:]...)
			break
		}
	}

	if s.dispatched {
		s.held = append(s.held, item)
		return
	}

	delay := s.cfg.BaseDelay + time.Duration(s.queueLen)*s.cfg.StaggerDelay
	s.queueLen++
	if delay > s.batchMax {
		s.batchMax = delay
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		// Cancelled, replaced, or cleaned up while this callback waited
		// for the lock: the map no longer points at this timer.
		if s.timers[item.id] != t {
			s.mu.Unlock()
			return
		}
		delete(s.timers, item.id)
		s.queueLen--
		s.beginDispatchLocked(delay)
		s.mu.Unlock()
		item.fn()
	})
	s.timers[item.id] = t
}

// cancelScheduledLocked stops and forgets the scheduled timer for id, if
// any. Removing the map entry also invalidates a callback that already
// fired and is waiting on the lock. Caller holds the lock.
func (s *Stagger) cancelScheduledLocked(id string) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
		s.queueLen--
	}
}

// beginDispatchLocked marks the batch as dispatching on its first firing
// callback and arms the settling timer that releases held items. Caller
// holds the lock.
func (s *Stagger) beginDispatchLocked(firedAt time.Duration) {
	if s.dispatched {
		return
	}
	s.dispatched = true

	// The batch ends at its longest delay; held items wait out the
	// remainder plus the buffer.
	remaining := s.batchMax - firedAt + s.cfg.BatchBuffer
	g := s.gen
	s.batchTimer = time.AfterFunc(remaining, func() {
		s.mu.Lock()
		if s.gen != g {
			s.mu.Unlock()
			return
		}
		s.batchTimer = nil
		s.dispatched = false
		s.batchMax = 0
		next := s.held
		s.held = nil
		for _, item := range next {
			s.addLocked(item)
		}
		s.mu.Unlock()
	})
}

// Cancel removes one pending animation, scheduled or held.
func (s *Stagger) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelScheduledLocked(id)
	for i, h := range s.held {
		if h.id == id {
			s.held = append(s.held[:i], s.held[i+1:]...)
			break
		}
	}
}

// Cleanup cancels everything: scheduled timers, held items, and the batch
// settling timer. Must be called on host teardown.
func (s *Stagger) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	if s.batchTimer != nil {
		s.batchTimer.Stop()
		s.batchTimer = nil
	}
	s.held = nil
	s.queueLen = 0
	s.batchMax = 0
	s.dispatched = false
}

// Pending returns how many animations are queued or held.
func (s *Stagger) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queueLen + len(s.held)
}
