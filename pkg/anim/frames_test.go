package anim

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFrameSchedulerRunsRequest(t *testing.T) {
	s := NewFrameScheduler(10 * time.Millisecond)

	done := make(chan struct{})
	s.Request(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("request never ran")
	}
}

func TestFrameSchedulerLastRequestWins(t *testing.T) {
	s := NewFrameScheduler(50 * time.Millisecond)

	// Prime lastRun so subsequent requests are deferred a full interval.
	primed := make(chan struct{})
	s.Request(func() { close(primed) })
	<-primed

	var first, second atomic.Int32
	s.Request(func() { first.Add(1) })
	s.Request(func() { second.Add(1) })

	time.Sleep(200 * time.Millisecond)
	if v := first.Load(); v != 0 {
		t.Errorf("superseded request ran %d times, want 0", v)
	}
	if v := second.Load(); v != 1 {
		t.Errorf("latest request ran %d times, want 1", v)
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	s := NewFrameScheduler(50 * time.Millisecond)

	primed := make(chan struct{})
	s.Request(func() { close(primed) })
	<-primed

	var calls atomic.Int32
	s.Request(func() { calls.Add(1) })
	if !s.Pending() {
		t.Error("request should be pending before its frame")
	}
	s.Cancel()

	time.Sleep(150 * time.Millisecond)
	if v := calls.Load(); v != 0 {
		t.Errorf("cancelled request ran %d times", v)
	}
	if s.Pending() {
		t.Error("nothing should be pending after Cancel")
	}
}

func TestFrameSchedulerThrottles(t *testing.T) {
	s := NewFrameScheduler(60 * time.Millisecond)

	primed := make(chan struct{})
	s.Request(func() { close(primed) })
	<-primed

	start := time.Now()
	done := make(chan struct{})
	s.Request(func() { close(done) })
	<-done

	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("request ran after %s, want roughly a full interval", elapsed)
	}
}
