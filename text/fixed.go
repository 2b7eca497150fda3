package text

// FixedMetrics is a deterministic provider where every glyph has the same
// em-relative advance. It backs tests and serves as a last-resort
// measurement source when no font files are available.
type FixedMetrics struct {
	// GlyphAdvance is the advance of one glyph as a fraction of the font
	// size; zero means FallbackGlyphAdvance.
	GlyphAdvance Fl
	// SpaceFactor is the advance of a space as a fraction of the font
	// size; zero means FallbackSpaceAdvance.
	SpaceFactor Fl
}

func (f FixedMetrics) glyph(size Fl) Fl {
	if f.GlyphAdvance > 0 {
		return f.GlyphAdvance * size
	}
	return FallbackGlyphAdvance * size
}

func (f FixedMetrics) SpaceAdvance(font FontDescription) (Fl, bool) {
	if f.SpaceFactor > 0 {
		return f.SpaceFactor * font.Size, true
	}
	return FallbackSpaceAdvance * font.Size, true
}

func (f FixedMetrics) WordAdvance(font FontDescription, word string) (Fl, bool) {
	return Fl(len([]rune(word))) * f.glyph(font.Size), true
}

func (f FixedMetrics) LineMetrics(font FontDescription) (LineMetrics, bool) {
	return LineMetrics{
		Ascent:     FallbackAscent * font.Size,
		Descent:    FallbackDescent * font.Size,
		LineHeight: FallbackLineHeight * font.Size,
	}, true
}
