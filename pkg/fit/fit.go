// Package fit finds the largest font size at which word-wrapped text fits
// a viewport. It runs a binary search over candidate sizes, measuring each
// candidate through the wrap simulator and a metrics.Provider, then backs
// off by a small safety margin so that metric/raster disagreements at the
// exact boundary cannot clip the last line.
//
// The solver has no fallible operations: degenerate inputs are handled by
// clamping and defaulting, and an unready viewport is reported as "not
// now" rather than an error.
package fit

import (
	"gitlab.com/tinyland/lab/textfit/pkg/metrics"
	"gitlab.com/tinyland/lab/textfit/pkg/wrap"
)

const (
	// MinSize is the smallest searchable font size.
	MinSize = 8
	// MaxSize is the largest searchable font size.
	MaxSize = 200
	// DefaultSize is the size applied when the document is empty.
	DefaultSize = 72
	// SafetyMargin is subtracted from the computed maximum fitting size.
	// Font metrics and actual glyph rendering can disagree by a pixel or
	// two at the fit boundary; two sizes of slack absorbs that.
	SafetyMargin = 2
)

// Viewport is the area available for text, in device pixels, with any
// padding already subtracted by the caller.
type Viewport struct {
	Width  float64
	Height float64
}

// Ready reports whether the viewport is large enough for a fit
// computation to be meaningful. Sub-pixel dimensions mean the surface has
// not been laid out yet; the caller should wait for the next resize.
func (v Viewport) Ready() bool {
	return v.Width > 1 && v.Height > 1
}

// Bounds is the inclusive font size search range.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds returns the standard search range [MinSize, MaxSize].
func DefaultBounds() Bounds {
	return Bounds{Min: MinSize, Max: MaxSize}
}

// Clamp forces size into the bounds.
func (b Bounds) Clamp(size int) int {
	if size < b.Min {
		return b.Min
	}
	if size > b.Max {
		return b.Max
	}
	return size
}

// Solver computes target font sizes for a fixed font family and metrics
// backend. It is stateless between calls; every Solve reads its inputs
// fresh and runs to completion synchronously.
type Solver struct {
	Family  string
	Metrics metrics.Provider
	Bounds  Bounds
	// Margin is the safety margin applied after the search. Zero is
	// honored; a negative value falls back to SafetyMargin.
	Margin int
	// Default is the size applied when the document is empty, clamped
	// into Bounds at use. Zero or less falls back to DefaultSize.
	Default int
}

// NewSolver returns a Solver over the default bounds with the standard
// safety margin and default size.
func NewSolver(family string, m metrics.Provider) *Solver {
	return &Solver{
		Family:  family,
		Metrics: m,
		Bounds:  DefaultBounds(),
		Margin:  SafetyMargin,
		Default: DefaultSize,
	}
}

// DefaultTarget returns the clamped empty-document size.
func (s *Solver) DefaultTarget() int {
	d := s.Default
	if d <= 0 {
		d = DefaultSize
	}
	return s.Bounds.Clamp(d)
}

// Solve returns the largest font size in bounds at which text, wrapped to
// the viewport width, fits the viewport height, minus the safety margin
// and re-clamped to the lower bound.
//
// ok is false when the viewport is not Ready; the solver does not run and
// the caller should retry on the next trigger. Empty text returns the
// default size clamped into bounds regardless of viewport dimensions.
//
// The search assumes total wrapped height is monotonically non-decreasing
// in font size for fixed text and width; see package metrics.
func (s *Solver) Solve(text string, vp Viewport) (size int, ok bool) {
	if !vp.Ready() {
		return 0, false
	}
	if text == "" {
		return s.DefaultTarget(), true
	}

	low := s.Bounds.Min
	high := s.Bounds.Max
	best := s.Bounds.Min

	for low <= high {
		mid := (low + high) / 2
		font := metrics.FontSpec{Family: s.Family, Size: mid}

		lines := wrap.Lines(text, font, vp.Width, s.Metrics)
		if wrap.Height(lines, font, s.Metrics) <= vp.Height {
			best = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	margin := s.Margin
	if margin < 0 {
		margin = SafetyMargin
	}
	target := best - margin
	if target < s.Bounds.Min {
		target = s.Bounds.Min
	}
	return target, true
}
