// Package metrics defines the font measurement seam between the text-fit
// core and whatever actually renders glyphs. The wrap simulator and fit
// solver never touch a rasterizer; they ask a Provider how wide a string
// is and how tall a line is, and trust the answers.
//
// A Provider must be deterministic within a session: the same (font, text)
// pair always measures the same. The fit solver additionally assumes that
// line height is monotonically non-decreasing in font size, which holds
// for any sane font implementation; it is documented here rather than
// verified at runtime.
//
// Two real backends live in subpackages: metrics/opentype measures parsed
// font files, metrics/cell measures terminal cells. The Fixed provider in
// this package is a deterministic linear model for tests.
package metrics

import "unicode/utf8"

// FontSpec identifies a font for measurement purposes: a family name and
// an integer point size. The family is fixed per session; only the size
// varies during a fit search.
type FontSpec struct {
	Family string
	Size   int
}

// Provider supplies text measurements for a given font spec.
type Provider interface {
	// MeasureWidth returns the rendered width of text in device pixels
	// under the given font.
	MeasureWidth(font FontSpec, text string) float64

	// LineHeight returns the standard single-line vertical advance
	// (ascent + descent + line gap) for the given font.
	LineHeight(font FontSpec) float64
}

// Fixed is a deterministic Provider that models a monospaced font with a
// linear size relationship: every rune is GlyphWidth × size pixels wide
// and a line is Leading × size pixels tall. It exists so that wrap and
// fit behavior can be tested without parsing a real font.
type Fixed struct {
	// GlyphWidth is the width of one rune as a fraction of the font size.
	GlyphWidth float64
	// Leading is the line height as a multiple of the font size.
	Leading float64
}

// NewFixed returns a Fixed provider with proportions typical of a latin
// text face: glyphs 0.6em wide, lines 1.2em tall.
func NewFixed() Fixed {
	return Fixed{GlyphWidth: 0.6, Leading: 1.2}
}

// MeasureWidth implements Provider.
func (f Fixed) MeasureWidth(font FontSpec, text string) float64 {
	return float64(utf8.RuneCountInString(text)) * float64(font.Size) * f.GlyphWidth
}

// LineHeight implements Provider.
func (f Fixed) LineHeight(font FontSpec) float64 {
	return float64(font.Size) * f.Leading
}
