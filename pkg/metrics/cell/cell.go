// Package cell implements metrics.Provider for a character-cell grid.
// Every glyph occupies a whole cell, so widths ignore the font size and
// count display columns instead. It backs the wrap preview, which lays
// text out in terminal cells rather than scaled pixels.
package cell

import (
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/textfit/pkg/metrics"
)

// Provider measures text in terminal cells scaled to device pixels.
type Provider struct {
	// CellWidth and CellHeight are the pixel dimensions of one cell.
	CellWidth  float64
	CellHeight float64
}

// New returns a provider for the given cell geometry.
func New(cellWidth, cellHeight float64) *Provider {
	return &Provider{CellWidth: cellWidth, CellHeight: cellHeight}
}

// MeasureWidth implements metrics.Provider. The width is the number of
// display columns the string occupies, wide runes counting double.
func (p *Provider) MeasureWidth(_ metrics.FontSpec, text string) float64 {
	return float64(ansi.StringWidth(text)) * p.CellWidth
}

// LineHeight implements metrics.Provider. A cell grid has one line
// height regardless of the requested size.
func (p *Provider) LineHeight(_ metrics.FontSpec) float64 {
	return p.CellHeight
}
