package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/textfit/pkg/metrics"
	"gitlab.com/tinyland/lab/textfit/pkg/wrap"
)

var (
	previewTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#7C3AED"))

	previewLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB")).
			Background(lipgloss.Color("#374151"))

	sizeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B")).
			Background(lipgloss.Color("#374151"))
)

// View renders the editor, the wrap preview, and the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.editor.View())
	b.WriteString("\n")
	b.WriteString(m.renderPreview())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderPreview shows how the current text breaks into lines at the
// size the transition is heading toward. Each display row is one
// simulated line, truncated to the terminal width.
func (m Model) renderPreview() string {
	rows := make([]string, 0, previewRows)

	lines := m.previewLines()
	title := fmt.Sprintf("wrap preview (%d lines)", len(lines))
	rows = append(rows, previewTitleStyle.Render(title))

	for i := 0; i < previewRows-1; i++ {
		if i >= len(lines) {
			rows = append(rows, "")
			continue
		}
		line := lines[i]
		if i == previewRows-2 && len(lines) > previewRows-1 {
			line = fmt.Sprintf("... %d more lines", len(lines)-(previewRows-2))
		}
		rows = append(rows, previewLineStyle.Render(ansi.Truncate(line, m.width, "…")))
	}
	return strings.Join(rows, "\n")
}

// previewLines runs the wrap simulation the solver would run at the
// current target size.
func (m Model) previewLines() []string {
	if m.lastText == "" || !m.viewport.Ready() {
		return nil
	}
	font := metrics.FontSpec{Family: m.solver.Family, Size: m.target}
	return wrap.Lines(m.lastText, font, m.viewport.Width, m.solver.Metrics)
}

// renderStatusBar renders the bottom line: animated size, fit target,
// viewport in device pixels, and key hints.
func (m Model) renderStatusBar() string {
	size := m.ctrl.Value(time.Now())

	sizePart := sizeStyle.Render(fmt.Sprintf(" %dpx ", size))
	if m.ctrl.Animating(time.Now()) {
		sizePart = sizeStyle.Render(fmt.Sprintf(" %dpx → %dpx ", size, m.target))
	}

	info := fmt.Sprintf(" viewport %.0f×%.0f  chars %d  ",
		m.viewport.Width, m.viewport.Height, len(m.lastText))
	hints := "ctrl+r:reset  esc:quit "

	bar := sizePart + statusStyle.Render(info)
	pad := m.width - ansi.StringWidth(bar) - ansi.StringWidth(hints)
	if pad < 0 {
		pad = 0
	}
	return bar + statusStyle.Render(strings.Repeat(" ", pad)+hints)
}
