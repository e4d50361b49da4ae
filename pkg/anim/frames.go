package anim

import (
	"sync"
	"time"
)

// DefaultFrameInterval is the scheduling interval targeting 60fps.
const DefaultFrameInterval = time.Second / 60

// FrameScheduler limits how often placeholder calculations run, matching a
// target frame rate. A request made before the current interval elapsed is
// deferred to the next frame boundary; a request arriving while another is
// still pending replaces it. At most one calculation is ever in flight.
type FrameScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	lastRun  time.Time
	timer    *time.Timer
	gen      uint64
	now      func() time.Time
}

// NewFrameScheduler creates a scheduler with the given interval.
// A zero interval selects DefaultFrameInterval.
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{interval: interval, now: time.Now}
}

// Request schedules fn on the next frame boundary, cancelling any pending
// request. fn runs on a timer goroutine.
func (s *FrameScheduler) Request(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	// The generation guards against a timer that fired between Stop and
	// its callback taking the lock: superseded requests never run.
	s.gen++
	g := s.gen

	wait := s.interval - s.now().Sub(s.lastRun)
	if wait < 0 {
		wait = 0
	}
	s.timer = time.AfterFunc(wait, func() {
		s.mu.Lock()
		if s.gen != g {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.lastRun = s.now()
		s.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending request.
func (s *FrameScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a request is waiting for its frame.
func (s *FrameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}
