// Package wrap simulates word-wrapping without rendering anything. Given
// text, a font, and an available pixel width, it produces the ordered
// sequence of visual lines a renderer would show, using a metrics.Provider
// for all width measurement.
//
// The output is a pure function of its inputs: no hidden state, no side
// effects, deterministic whenever the provider is.
package wrap

import (
	"strings"

	"gitlab.com/tinyland/lab/textfit/pkg/metrics"
)

// Lines word-wraps text to fit within width pixels under the given font.
//
// Algorithm:
//  1. Split on explicit newlines into paragraphs. Empty paragraphs (two
//     consecutive newlines, or a trailing newline) each contribute one
//     empty output line, so vertical accounting matches what a renderer
//     shows.
//  2. A paragraph that is empty or whitespace-only yields exactly one
//     empty line.
//  3. Otherwise words accumulate greedily: a word joins the current line
//     if the joined line still measures within width; otherwise the
//     current line is emitted and the word starts a new one. The first
//     word of a paragraph is never rejected, so a single word wider than
//     the available width sits alone on its line and overflows
//     horizontally rather than being broken mid-word.
//  4. The remainder of each paragraph is always emitted as a final line.
//
// Empty text yields a single empty line; the result is never empty.
func Lines(text string, font metrics.FontSpec, width float64, m metrics.Provider) []string {
	paragraphs := strings.Split(text, "\n")

	// Most text wraps to at least one line per paragraph.
	lines := make([]string, 0, len(paragraphs))

	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			trial := current + " " + word
			if m.MeasureWidth(font, trial) <= width {
				current = trial
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}

	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// Height returns the total rendered height of a wrapped result: line
// count times the provider's line height for the font. Lines is assumed
// to come from Lines with the same font.
func Height(lines []string, font metrics.FontSpec, m metrics.Provider) float64 {
	return float64(len(lines)) * m.LineHeight(font)
}
