// Package opentype implements metrics.Provider on top of a parsed
// OpenType font. Widths come from real glyph advances and line height
// from the face's ascent + descent + line gap, so the fit solver sees the
// same numbers a renderer of that font would.
//
// Faces are immutable per size, so the provider keeps one face per size
// it has been asked about. A fit search touches at most a handful of
// sizes, which keeps the cache tiny.
package opentype

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"gitlab.com/tinyland/lab/textfit/pkg/metrics"
)

// dpi fixes the point-to-pixel mapping so that a font size of N measures
// N pixels per em. The viewport is already in device pixels.
const dpi = 72

// probeSize is the face created eagerly in New; it doubles as the
// fallback face if creation at another size ever fails.
const probeSize = 12

// Provider measures text using a parsed OpenType font.
type Provider struct {
	font *sfnt.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// New wraps a parsed font. It creates a probe face up front so that a
// broken font surfaces as a startup error instead of silent garbage
// measurements later.
func New(f *sfnt.Font) (*Provider, error) {
	p := &Provider{font: f, faces: make(map[int]font.Face)}
	if _, err := p.newFace(probeSize); err != nil {
		return nil, fmt.Errorf("font unusable: %w", err)
	}
	return p, nil
}

// Load parses the font file at path. An empty path loads the embedded Go
// Regular face, which is always available.
func Load(path string) (*Provider, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return New(f)
}

// MeasureWidth implements metrics.Provider.
func (p *Provider) MeasureWidth(spec metrics.FontSpec, text string) float64 {
	face := p.face(spec.Size)
	p.mu.Lock()
	defer p.mu.Unlock()
	return fixedToPixels(font.MeasureString(face, text))
}

// LineHeight implements metrics.Provider.
func (p *Provider) LineHeight(spec metrics.FontSpec) float64 {
	face := p.face(spec.Size)
	p.mu.Lock()
	defer p.mu.Unlock()
	return fixedToPixels(face.Metrics().Height)
}

// face returns the cached face for size, creating it on first use. The
// probe in New makes later creation failures effectively impossible, but
// if one happens the smallest usable size stands in rather than
// panicking mid-search.
func (p *Provider) face(size int) font.Face {
	if size < 1 {
		size = 1
	}

	p.mu.Lock()
	if f, ok := p.faces[size]; ok {
		p.mu.Unlock()
		return f
	}
	p.mu.Unlock()

	f, err := p.newFace(size)
	if err != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.faces[probeSize]
	}
	return f
}

// newFace creates and caches a face at the given size.
func (p *Provider) newFace(size int) (font.Face, error) {
	f, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.faces[size] = f
	p.mu.Unlock()
	return f, nil
}

// fixedToPixels converts a 26.6 fixed-point length to float pixels.
func fixedToPixels(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
