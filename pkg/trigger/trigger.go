// Package trigger is the boundary between high-frequency editing events
// and the fit solver. Content changes arrive on every keystroke and
// resizes on every tick of a drag; the Debouncer coalesces them into a
// single fit request after a short quiescence window, always carrying the
// latest snapshot. The Latch guarantees at most one fit computation is in
// flight at a time.
package trigger

import (
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/tinyland/lab/textfit/pkg/fit"
)

// DefaultWindow is the standard quiescence window: the debounced action
// fires this long after the last event.
const DefaultWindow = 100 * time.Millisecond

// Kind distinguishes the two event sources the debouncer listens to.
type Kind int

const (
	// ContentChanged fires when the document text was edited.
	ContentChanged Kind = iota
	// ViewportResized fires when the visible area changed size.
	ViewportResized
)

// String returns the event kind name for logging.
func (k Kind) String() string {
	switch k {
	case ContentChanged:
		return "content-changed"
	case ViewportResized:
		return "viewport-resized"
	default:
		return "unknown"
	}
}

// Snapshot is the state a fit computation runs against: the document text
// and the viewport as they were when the quiescence window closed.
type Snapshot struct {
	Text     string
	Viewport fit.Viewport
}

// Event is one raw trigger from the front-end.
type Event struct {
	Kind     Kind
	Snapshot Snapshot
}

// Debouncer coalesces Events into a single callback per quiescence
// window. Every Observe replaces the pending snapshot and restarts the
// window, so the callback always sees the newest state. The callback runs
// on a timer goroutine; it should hand off to the owner's event loop
// rather than doing heavy work inline.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	pending Snapshot
	armed   bool
	notify  func(Snapshot)
}

// NewDebouncer returns a Debouncer that calls notify with the latest
// snapshot once events have been quiet for window. A window of zero or
// less falls back to DefaultWindow.
func NewDebouncer(window time.Duration, notify func(Snapshot)) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window, notify: notify}
}

// Observe records an event. The pending snapshot is replaced and the
// quiescence window restarts.
func (d *Debouncer) Observe(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = ev.Snapshot
	d.armed = true

	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.fire)
		return
	}
	d.timer.Reset(d.window)
}

// fire delivers the pending snapshot. It runs on the timer goroutine.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return
	}
	d.armed = false
	snap := d.pending
	d.mu.Unlock()

	d.notify(snap)
}

// Flush fires the pending snapshot immediately, if any. Used on shutdown
// so a trailing edit is not dropped.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Stop cancels any pending delivery without firing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.armed = false
}

// Latch is a one-slot mutual exclusion guard around the fit computation.
// The design requires at most one active fit at a time; a trigger that
// finds the latch held should re-arm its debouncer with the new snapshot
// instead of entering (restart semantics, no queue).
type Latch struct {
	busy atomic.Bool
}

// TryAcquire claims the latch. It returns false if a fit computation is
// already in flight.
func (l *Latch) TryAcquire() bool {
	return l.busy.CompareAndSwap(false, true)
}

// Release frees the latch after a fit computation completes.
func (l *Latch) Release() {
	l.busy.Store(false)
}

// Held reports whether a fit computation is in flight.
func (l *Latch) Held() bool {
	return l.busy.Load()
}
