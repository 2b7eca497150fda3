package text

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontMetrics measures text with real OpenType fonts, through
// golang.org/x/image/font faces. Kerning is applied between consecutive
// glyphs of a word.
//
// The face cache is not synchronized: per the pipeline contract the
// provider is queried from a single goroutine; hosts sharing one instance
// across documents must serialize access.
type FontMetrics struct {
	fonts map[fontKey]*sfnt.Font
	faces map[faceKey]font.Face
}

type fontKey struct {
	family string
	bold   bool
	italic bool
}

type faceKey struct {
	fontKey
	size Fl
}

// NewFontMetrics returns a provider preloaded with the embedded Go fonts,
// registered under the generic families "sans-serif", "serif" and
// "monospace". Additional faces may be added with AddFace.
func NewFontMetrics() *FontMetrics {
	m := &FontMetrics{
		fonts: make(map[fontKey]*sfnt.Font),
		faces: make(map[faceKey]font.Face),
	}
	for _, family := range []string{"sans-serif", "serif", "go"} {
		m.mustAdd(family, false, false, goregular.TTF)
		m.mustAdd(family, true, false, gobold.TTF)
		m.mustAdd(family, false, true, goitalic.TTF)
		m.mustAdd(family, true, true, gobolditalic.TTF)
	}
	m.mustAdd("monospace", false, false, gomono.TTF)
	m.mustAdd("monospace", true, false, gomonobold.TTF)
	return m
}

func (m *FontMetrics) mustAdd(family string, bold, italic bool, data []byte) {
	if err := m.AddFace(family, bold, italic, data); err != nil {
		panic(fmt.Sprintf("embedded font: %v", err)) // unreachable on the Go fonts
	}
}

// AddFace registers an OpenType font file for the given family and style.
func (m *FontMetrics) AddFace(family string, bold, italic bool, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("loading font for %q: %w", family, err)
	}
	m.fonts[fontKey{family: normalizeFamily(family), bold: bold, italic: italic}] = f
	return nil
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`))
}

// resolve walks the comma-separated family list and falls back on
// sans-serif, then on any weight/slant of the matched family.
func (m *FontMetrics) resolve(fd FontDescription) (*sfnt.Font, bool) {
	bold := fd.Weight >= 600
	italic := fd.Slant == SlantItalic
	families := strings.Split(fd.Family, ",")
	families = append(families, "sans-serif")
	for _, family := range families {
		key := fontKey{family: normalizeFamily(family), bold: bold, italic: italic}
		if f, in := m.fonts[key]; in {
			return f, true
		}
		// degrade style before degrading family
		for _, alt := range []fontKey{
			{family: key.family, bold: bold},
			{family: key.family, italic: italic},
			{family: key.family},
		} {
			if f, in := m.fonts[alt]; in {
				return f, true
			}
		}
	}
	return nil, false
}

// Face returns a sized font.Face for drawing, or nil when no registered
// font matches. Faces are cached per description.
func (m *FontMetrics) Face(fd FontDescription) font.Face {
	key := faceKey{
		fontKey: fontKey{
			family: normalizeFamily(fd.Family),
			bold:   fd.Weight >= 600,
			italic: fd.Slant == SlantItalic,
		},
		size: fd.Size,
	}
	if face, in := m.faces[key]; in {
		return face
	}
	f, ok := m.resolve(fd)
	if !ok {
		return nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fd.Size,
		DPI:     72, // 1pt == 1px, coordinates stay in logical pixels
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	m.faces[key] = face
	return face
}

func (m *FontMetrics) SpaceAdvance(fd FontDescription) (Fl, bool) {
	face := m.Face(fd)
	if face == nil {
		return 0, false
	}
	adv, ok := face.GlyphAdvance(' ')
	if !ok {
		return 0, false
	}
	return fromFixed(adv), true
}

func (m *FontMetrics) WordAdvance(fd FontDescription, word string) (Fl, bool) {
	face := m.Face(fd)
	if face == nil {
		return 0, false
	}
	var total fixed.Int26_6
	prev := rune(-1)
	for _, r := range word {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			return 0, false
		}
		if prev >= 0 {
			total += face.Kern(prev, r)
		}
		total += adv
		prev = r
	}
	return fromFixed(total), true
}

func (m *FontMetrics) LineMetrics(fd FontDescription) (LineMetrics, bool) {
	face := m.Face(fd)
	if face == nil {
		return LineMetrics{}, false
	}
	metrics := face.Metrics()
	return LineMetrics{
		Ascent:     fromFixed(metrics.Ascent),
		Descent:    fromFixed(metrics.Descent),
		LineHeight: fromFixed(metrics.Height),
	}, true
}

func fromFixed(v fixed.Int26_6) Fl {
	return Fl(v) / 64
}
