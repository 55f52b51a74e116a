// Package tui provides the interactive Bubbletea front end. A textarea
// editor feeds content changes and window resizes into the debounced
// trigger boundary; solved sizes come back through a channel relay and
// drive the animated size readout and the wrap preview.
//
// The model never computes a fit inline with a keystroke. Edits and
// resizes are observed by the debouncer, which delivers one coalesced
// snapshot per quiet period; the solve itself runs when that snapshot
// arrives back in the update loop.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/textfit/pkg/fit"
	"gitlab.com/tinyland/lab/textfit/pkg/termpix"
	"gitlab.com/tinyland/lab/textfit/pkg/transition"
	"gitlab.com/tinyland/lab/textfit/pkg/trigger"
)

// frameInterval is the animation frame period while a size transition is
// in flight. Ticks stop as soon as the transition settles.
const frameInterval = 16 * time.Millisecond

// statusBarRows is the height reserved below the editor.
const statusBarRows = 1

// previewRows is the height reserved for the wrap preview pane.
const previewRows = 6

// fitRequestMsg carries a debounced snapshot back into the update loop.
type fitRequestMsg struct {
	Snapshot trigger.Snapshot
}

// frameMsg drives the size transition animation.
type frameMsg struct {
	Time time.Time
}

// Options configures a Model. Solver and Geometry are required. A zero
// Debounce falls back to trigger.DefaultWindow; a zero Transition snaps
// sizes without animating.
type Options struct {
	Solver     *fit.Solver
	Geometry   termpix.Geometry
	Padding    int
	Debounce   time.Duration
	Transition time.Duration
	Logger     *slog.Logger
}

// Model is the root Bubbletea model.
type Model struct {
	editor textarea.Model
	solver *fit.Solver
	ctrl   *transition.Controller
	deb    *trigger.Debouncer
	geom   termpix.Geometry

	padding  int
	requests chan trigger.Snapshot
	latch    *trigger.Latch
	logger   *slog.Logger

	width    int
	height   int
	viewport fit.Viewport
	lastText string

	target   int
	quitting bool
}

// New builds a Model from opts. The debouncer starts observing
// immediately; its notifications are parked in a one-slot channel until
// Init wires the relay command.
func New(opts Options) Model {
	ed := textarea.New()
	ed.Placeholder = "Type here..."
	ed.CharLimit = 0
	ed.ShowLineNumbers = false
	// ctrl+a jumps to the start of input, standing in for select-all on
	// a surface with no selection model. The default line-start binding
	// also claims ctrl+a, so it is narrowed to home.
	ed.KeyMap.InputBegin = key.NewBinding(key.WithKeys("ctrl+a", "ctrl+home"))
	ed.KeyMap.LineStart = key.NewBinding(key.WithKeys("home"))
	ed.Focus()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = trigger.DefaultWindow
	}

	// A zero transition duration is honored as "snap, no animation".
	ctrl := transition.NewController(opts.Transition)
	initial := opts.Solver.DefaultTarget()
	ctrl.Set(initial)

	m := Model{
		editor:   ed,
		solver:   opts.Solver,
		ctrl:     ctrl,
		geom:     opts.Geometry,
		padding:  opts.Padding,
		requests: make(chan trigger.Snapshot, 1),
		latch:    &trigger.Latch{},
		logger:   logger,
		target:   initial,
	}
	m.deb = trigger.NewDebouncer(debounce, m.pushRequest)
	return m
}

// pushRequest parks a snapshot in the one-slot request channel. A newer
// snapshot displaces an unconsumed older one, so the update loop only
// ever sees the latest state.
func (m Model) pushRequest(snap trigger.Snapshot) {
	for {
		select {
		case m.requests <- snap:
			return
		default:
			select {
			case <-m.requests:
			default:
			}
		}
	}
}

// awaitRequest blocks on the request channel and surfaces the snapshot
// as a fitRequestMsg. Update re-issues it after every delivery so there
// is always exactly one relay in flight.
func (m Model) awaitRequest() tea.Cmd {
	return func() tea.Msg {
		return fitRequestMsg{Snapshot: <-m.requests}
	}
}

// frameTick schedules the next animation frame.
func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{Time: t}
	})
}

// Init starts the cursor blink and the request relay.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.awaitRequest())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.deb.Stop()
			return m, tea.Quit
		case "ctrl+r":
			// Reset to the default size with the usual animation.
			m.target = m.solver.DefaultTarget()
			m.ctrl.AnimateTo(m.target, time.Now())
			return m, frameTick()
		}

		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)

		if text := m.editor.Value(); text != m.lastText {
			m.lastText = text
			m.deb.Observe(trigger.Event{
				Kind:     trigger.ContentChanged,
				Snapshot: trigger.Snapshot{Text: text, Viewport: m.viewport},
			})
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width)
		m.editor.SetHeight(editorRows(msg.Height))
		m.viewport = m.geom.Viewport(msg.Width, msg.Height-statusBarRows, m.padding)

		m.deb.Observe(trigger.Event{
			Kind:     trigger.ViewportResized,
			Snapshot: trigger.Snapshot{Text: m.lastText, Viewport: m.viewport},
		})
		return m, nil

	case fitRequestMsg:
		return m.solve(msg.Snapshot)

	case frameMsg:
		if m.ctrl.Animating(msg.Time) {
			return m, frameTick()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// solve runs the fit search for a debounced snapshot and starts a size
// transition when the target moved. The latch keeps a second snapshot
// from overlapping a solve; a contended snapshot is parked again and
// retried on the next relay pass.
func (m Model) solve(snap trigger.Snapshot) (tea.Model, tea.Cmd) {
	if !m.latch.TryAcquire() {
		m.pushRequest(snap)
		return m, m.awaitRequest()
	}
	size, ok := m.solver.Solve(snap.Text, snap.Viewport)
	m.latch.Release()

	if !ok {
		m.logger.Debug("viewport not ready, awaiting resize",
			"width", snap.Viewport.Width, "height", snap.Viewport.Height)
		return m, m.awaitRequest()
	}

	if size == m.target {
		return m, m.awaitRequest()
	}

	m.logger.Debug("fit solved", "size", size, "previous", m.target,
		"chars", len(snap.Text))
	m.target = size
	m.ctrl.AnimateTo(size, time.Now())
	return m, tea.Batch(m.awaitRequest(), frameTick())
}

// Size returns the current animated font size.
func (m Model) Size() int {
	return m.ctrl.Value(time.Now())
}

// Target returns the size the transition is heading toward.
func (m Model) Target() int {
	return m.target
}

// editorRows returns the editor height for a terminal of the given
// total rows.
func editorRows(total int) int {
	rows := total - statusBarRows - previewRows
	if rows < 1 {
		rows = 1
	}
	return rows
}
