package anim

import (
	"sync"
	"time"
)

// DebounceOptions configures which edges of a call burst invoke the
// function.
type DebounceOptions struct {
	// Leading invokes on the first call of a burst.
	Leading bool

	// Trailing invokes the most recent function once the burst goes quiet.
	Trailing bool
}

// Debouncer coalesces rapid calls into at most one leading and one trailing
// invocation per burst. The zero options invoke on the trailing edge only,
// which is what the placeholder pipeline wants: the last pointer position
// of a burst is the one that matters.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	opts    DebounceOptions
	timer   *time.Timer
	gen     uint64
	pending func()
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration, opts DebounceOptions) *Debouncer {
	if !opts.Leading && !opts.Trailing {
		opts.Trailing = true
	}
	return &Debouncer{delay: delay, opts: opts}
}

// Call schedules fn according to the configured edges. Later calls within
// the quiet period replace earlier pending ones.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	leading := d.callLocked(fn)
	d.mu.Unlock()

	if leading != nil {
		leading()
	}
}

// callLocked records fn and re-arms the quiet-period timer. Bumping gen
// invalidates a timer callback that already fired but has not yet taken
// the lock, so it cannot consume the state this call writes. Caller holds
// the lock; the returned func, if any, is the leading-edge invocation and
// must run after unlocking.
func (d *Debouncer) callLocked(fn func()) func() {
	burstStart := d.timer == nil
	if d.timer != nil {
		d.timer.Stop()
	}

	var leading func()
	if burstStart && d.opts.Leading {
		leading = fn
	} else if d.opts.Trailing {
		d.pending = fn
	}

	d.gen++
	g := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(g) })
	return leading
}

// fire runs at the end of a quiet period. A stale generation means the
// burst re-armed after this timer fired.
func (d *Debouncer) fire(g uint64) {
	d.mu.Lock()
	if g != d.gen {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush immediately invokes any pending trailing call.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	d.gen++
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops any pending invocation and resets the burst.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
