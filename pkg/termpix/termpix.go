// Package termpix resolves terminal pixel geometry. The fit solver works
// in device pixels, but a terminal front-end only learns its size in
// character cells; this package detects how many pixels one cell covers
// and converts cell dimensions into a pixel viewport.
package termpix

import (
	"os"

	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/textfit/pkg/fit"
)

// defaultCellW and defaultCellH are fallback cell pixel dimensions used
// when detection fails. These are common for 80-column terminals with
// standard fonts.
const (
	defaultCellW = 8
	defaultCellH = 16
)

// Geometry is the pixel footprint of a single terminal cell.
type Geometry struct {
	CellWidth  int
	CellHeight int
}

// Detect returns the cell pixel geometry of the controlling terminal.
//
// It tries the TIOCGWINSZ ioctl first: if the terminal reports pixel
// dimensions alongside column/row counts, cell size is pixels / cells.
// When the ioctl is unavailable or reports zeros (common under terminal
// multiplexers), the defaults are returned. Detection never fails; the
// worst case is the 8x16 fallback.
func Detect() Geometry {
	w, h, err := detectCellSizeIOCTL()
	if err == nil && w > 0 && h > 0 {
		return Geometry{CellWidth: w, CellHeight: h}
	}
	return Geometry{CellWidth: defaultCellW, CellHeight: defaultCellH}
}

// Viewport converts a cell grid of cols x rows into the pixel viewport
// available for text, subtracting padding pixels from every side. The
// result may be degenerate (not Ready) when the grid is tiny; callers
// pass that through to the solver's readiness check rather than
// special-casing it here.
func (g Geometry) Viewport(cols, rows, padding int) fit.Viewport {
	return fit.Viewport{
		Width:  float64(cols*g.CellWidth - 2*padding),
		Height: float64(rows*g.CellHeight - 2*padding),
	}
}

// Size returns the terminal dimensions in cells for the standard output,
// for use before a TUI event loop is running and reporting sizes itself.
func Size() (cols, rows int, err error) {
	return term.GetSize(os.Stdout.Fd())
}
