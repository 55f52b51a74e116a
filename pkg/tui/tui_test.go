package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/textfit/pkg/fit"
	"gitlab.com/tinyland/lab/textfit/pkg/metrics"
	"gitlab.com/tinyland/lab/textfit/pkg/termpix"
	"gitlab.com/tinyland/lab/textfit/pkg/trigger"
)

// newTestModel builds a Model over the deterministic Fixed metrics with
// a 10x20 pixel cell grid and a short debounce window.
func newTestModel() Model {
	return New(Options{
		Solver:     fit.NewSolver("Test", metrics.NewFixed()),
		Geometry:   termpix.Geometry{CellWidth: 10, CellHeight: 20},
		Debounce:   5 * time.Millisecond,
		Transition: 200 * time.Millisecond,
	})
}

// update sends a message through Update and casts the result back.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// resize delivers a WindowSizeMsg for a cols x rows terminal.
func resize(m Model, cols, rows int) Model {
	m, _ = update(m, tea.WindowSizeMsg{Width: cols, Height: rows})
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewStartsAtDefaultSize(t *testing.T) {
	m := newTestModel()
	if m.Target() != fit.DefaultSize {
		t.Errorf("target = %d, want %d", m.Target(), fit.DefaultSize)
	}
	if m.Size() != fit.DefaultSize {
		t.Errorf("size = %d, want %d", m.Size(), fit.DefaultSize)
	}
}

func TestWindowSizeSetsViewport(t *testing.T) {
	m := resize(newTestModel(), 80, 31)

	// 80 cells at 10px wide; 30 rows (one reserved for the status bar)
	// at 20px tall.
	if m.viewport.Width != 800 {
		t.Errorf("viewport width = %v, want 800", m.viewport.Width)
	}
	if m.viewport.Height != 600 {
		t.Errorf("viewport height = %v, want 600", m.viewport.Height)
	}
}

func TestFitRequestAnimatesTowardSolvedSize(t *testing.T) {
	m := resize(newTestModel(), 80, 31)

	snap := trigger.Snapshot{Text: "hi", Viewport: m.viewport}
	m, cmd := update(m, fitRequestMsg{Snapshot: snap})

	// Short text in a large viewport hits the upper bound minus the
	// safety margin.
	want := fit.MaxSize - fit.SafetyMargin
	if m.Target() != want {
		t.Errorf("target = %d, want %d", m.Target(), want)
	}
	if cmd == nil {
		t.Error("expected a command to continue the relay and animation")
	}
}

func TestFitRequestWithUnreadyViewportKeepsTarget(t *testing.T) {
	m := newTestModel()

	snap := trigger.Snapshot{Text: "hi", Viewport: fit.Viewport{}}
	m, cmd := update(m, fitRequestMsg{Snapshot: snap})

	if m.Target() != fit.DefaultSize {
		t.Errorf("target = %d, want %d", m.Target(), fit.DefaultSize)
	}
	if cmd == nil {
		t.Error("expected the relay command to be re-issued")
	}
}

func TestFitRequestSameTargetSkipsAnimation(t *testing.T) {
	m := resize(newTestModel(), 80, 31)

	snap := trigger.Snapshot{Text: "hi", Viewport: m.viewport}
	m, _ = update(m, fitRequestMsg{Snapshot: snap})
	target := m.Target()

	m, _ = update(m, fitRequestMsg{Snapshot: snap})
	if m.Target() != target {
		t.Errorf("target moved from %d to %d on identical input", target, m.Target())
	}
	if m.ctrl.Animating(time.Now().Add(time.Second)) {
		t.Error("transition still animating after duplicate solve")
	}
}

func TestEscQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not produce a quit message")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not produce a quit message")
	}
}

func TestCtrlRResetsToDefault(t *testing.T) {
	m := resize(newTestModel(), 80, 31)
	m, _ = update(m, fitRequestMsg{Snapshot: trigger.Snapshot{Text: "hi", Viewport: m.viewport}})
	if m.Target() == fit.DefaultSize {
		t.Fatal("setup failed to move the target off the default")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Target() != fit.DefaultSize {
		t.Errorf("target = %d, want %d", m.Target(), fit.DefaultSize)
	}
}

func TestTypingReachesDebouncer(t *testing.T) {
	m := resize(newTestModel(), 80, 31)

	m, _ = update(m, keyPress('a'))
	m, _ = update(m, keyPress('b'))

	// Wait out the debounce window, then drain the relay directly.
	done := make(chan tea.Msg, 1)
	go func() { done <- m.awaitRequest()() }()

	select {
	case msg := <-done:
		req, ok := msg.(fitRequestMsg)
		if !ok {
			t.Fatalf("relay delivered %T, want fitRequestMsg", msg)
		}
		if req.Snapshot.Text != "ab" {
			t.Errorf("snapshot text = %q, want %q", req.Snapshot.Text, "ab")
		}
	case <-time.After(time.Second):
		t.Fatal("debounced snapshot never delivered")
	}
}

func TestResizeReachesDebouncer(t *testing.T) {
	m := resize(newTestModel(), 80, 31)
	m = resize(m, 40, 21)

	// Both resizes fall inside one debounce window, but read until the
	// latest geometry shows up in case they were delivered separately.
	deadline := time.After(time.Second)
	for {
		done := make(chan tea.Msg, 1)
		go func() { done <- m.awaitRequest()() }()

		select {
		case msg := <-done:
			req := msg.(fitRequestMsg)
			if req.Snapshot.Viewport.Width == 400 {
				return
			}
		case <-deadline:
			t.Fatal("snapshot with the latest viewport never delivered")
		}
	}
}

func TestNewerSnapshotDisplacesParkedOne(t *testing.T) {
	m := newTestModel()

	m.pushRequest(trigger.Snapshot{Text: "old"})
	m.pushRequest(trigger.Snapshot{Text: "new"})

	req := m.awaitRequest()().(fitRequestMsg)
	if req.Snapshot.Text != "new" {
		t.Errorf("relay delivered %q, want %q", req.Snapshot.Text, "new")
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := newTestModel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q before first resize", got)
	}
}

func TestViewShowsSizeAndHints(t *testing.T) {
	m := resize(newTestModel(), 80, 31)
	view := m.View()
	if !strings.Contains(view, "px") {
		t.Error("view missing size readout")
	}
	if !strings.Contains(view, "esc:quit") {
		t.Error("view missing key hints")
	}
}

func TestViewPreviewReflectsWrap(t *testing.T) {
	m := resize(newTestModel(), 80, 31)
	m, _ = update(m, keyPress('h'))
	m, _ = update(m, keyPress('i'))
	m, _ = update(m, fitRequestMsg{Snapshot: trigger.Snapshot{Text: "hi", Viewport: m.viewport}})

	view := m.View()
	if !strings.Contains(view, "wrap preview (1 lines)") {
		t.Errorf("preview title missing from view:\n%s", view)
	}
}

func TestInitReturnsCommands(t *testing.T) {
	m := newTestModel()
	if m.Init() == nil {
		t.Error("Init() returned nil")
	}
}
