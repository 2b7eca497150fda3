// Package text defines the measurement provider consumed by the layout
// engine, and its concrete implementations. Layout never touches font
// files itself: all metrics flow through the MetricsProvider capability,
// so tests can substitute deterministic fakes.
package text

import "github.com/inkwellrender/inkwell/utils"

type Fl = utils.Fl

// Slant is the posture of a font face.
type Slant uint8

const (
	SlantNormal Slant = iota
	SlantItalic
)

// FontDescription identifies the font to measure with.
type FontDescription struct {
	Family string
	Size   Fl // in logical pixels
	Weight int
	Slant  Slant
}

// LineMetrics are the vertical metrics of a font at a given size.
type LineMetrics struct {
	Ascent     Fl
	Descent    Fl // positive, below the baseline
	LineHeight Fl // recommended line advance
}

// MetricsProvider supplies advance widths and line metrics. It is read-only
// from the pipeline's perspective; implementations with internal caches must
// be serialized by the hosting application when shared across documents.
//
// A false second return value means the provider has no metric for the
// query; the layout engine then falls back to documented defaults and
// records a diagnostic.
type MetricsProvider interface {
	// SpaceAdvance returns the advance width of a single breakable space.
	SpaceAdvance(font FontDescription) (Fl, bool)

	// WordAdvance returns the advance width of an unbreakable token,
	// the sum of its glyph advances including kerning.
	WordAdvance(font FontDescription, word string) (Fl, bool)

	// LineMetrics returns the vertical metrics of the active font.
	LineMetrics(font FontDescription) (LineMetrics, bool)
}

// Fallback factors applied by the layout engine when a provider reports a
// missing metric, expressed as a fraction of the font size.
const (
	FallbackGlyphAdvance = 0.5
	FallbackSpaceAdvance = 0.25
	FallbackAscent       = 0.8
	FallbackDescent      = 0.2
	FallbackLineHeight   = 1.2
)
