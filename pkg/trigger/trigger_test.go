package trigger

import (
	"sync"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/textfit/pkg/fit"
)

// recorder collects debouncer deliveries for assertions.
type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *recorder) notify(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func (r *recorder) last() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snaps) == 0 {
		return Snapshot{}
	}
	return r.snaps[len(r.snaps)-1]
}

func snap(text string) Snapshot {
	return Snapshot{Text: text, Viewport: fit.Viewport{Width: 800, Height: 600}}
}

// waitFor polls until cond is true or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestBurstCoalescesToSingleDelivery(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.notify)

	// Simulate a typing burst: five events inside one window.
	for _, text := range []string{"h", "he", "hel", "hell", "hello"} {
		d.Observe(Event{Kind: ContentChanged, Snapshot: snap(text)})
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, func() bool { return rec.count() >= 1 }, "debouncer never fired")
	// Allow another window to pass to catch spurious extra deliveries.
	time.Sleep(60 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("burst delivered %d times, want 1", got)
	}
	if got := rec.last().Text; got != "hello" {
		t.Errorf("delivered snapshot %q, want latest (\"hello\")", got)
	}
}

func TestMixedEventKindsShareOneWindow(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.notify)

	d.Observe(Event{Kind: ContentChanged, Snapshot: snap("text")})
	d.Observe(Event{Kind: ViewportResized, Snapshot: Snapshot{
		Text:     "text",
		Viewport: fit.Viewport{Width: 1024, Height: 768},
	}})

	waitFor(t, func() bool { return rec.count() >= 1 }, "debouncer never fired")
	time.Sleep(60 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("two event kinds delivered %d times, want 1", got)
	}
	if got := rec.last().Viewport.Width; got != 1024 {
		t.Errorf("delivered viewport width %v, want 1024 (latest snapshot)", got)
	}
}

func TestQuietPeriodsDeliverSeparately(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.notify)

	d.Observe(Event{Kind: ContentChanged, Snapshot: snap("first")})
	waitFor(t, func() bool { return rec.count() >= 1 }, "first delivery missing")

	d.Observe(Event{Kind: ContentChanged, Snapshot: snap("second")})
	waitFor(t, func() bool { return rec.count() >= 2 }, "second delivery missing")

	if got := rec.last().Text; got != "second" {
		t.Errorf("second delivery carried %q", got)
	}
}

func TestFlushDeliversImmediately(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Hour, rec.notify)

	d.Observe(Event{Kind: ContentChanged, Snapshot: snap("pending")})
	d.Flush()

	if got := rec.count(); got != 1 {
		t.Fatalf("Flush delivered %d times, want 1", got)
	}
	if got := rec.last().Text; got != "pending" {
		t.Errorf("Flush delivered %q", got)
	}
}

func TestFlushWithNothingPendingIsNoop(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.notify)

	d.Flush()
	if got := rec.count(); got != 0 {
		t.Errorf("empty Flush delivered %d times, want 0", got)
	}
}

func TestStopCancelsPendingDelivery(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.notify)

	d.Observe(Event{Kind: ContentChanged, Snapshot: snap("doomed")})
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Errorf("Stop still delivered %d times", got)
	}
}

func TestLatchSingleHolder(t *testing.T) {
	var l Latch

	if !l.TryAcquire() {
		t.Fatal("first TryAcquire failed")
	}
	if l.TryAcquire() {
		t.Error("second TryAcquire succeeded while held")
	}
	if !l.Held() {
		t.Error("Held = false while held")
	}

	l.Release()
	if l.Held() {
		t.Error("Held = true after Release")
	}
	if !l.TryAcquire() {
		t.Error("TryAcquire failed after Release")
	}
}

func TestKindString(t *testing.T) {
	if ContentChanged.String() != "content-changed" {
		t.Errorf("ContentChanged.String() = %q", ContentChanged.String())
	}
	if ViewportResized.String() != "viewport-resized" {
		t.Errorf("ViewportResized.String() = %q", ViewportResized.String())
	}
}
