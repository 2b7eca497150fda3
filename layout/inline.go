package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/inkwellrender/inkwell/diagnostics"
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/text"
	"github.com/inkwellrender/inkwell/utils"
)

// layout positions are compared with a tolerance so accumulated float
// error never flips a break decision between identical runs
const lineEpsilon = 1e-6

type tokenKind uint8

const (
	wordToken tokenKind = iota
	spaceToken
	breakToken // hard break, white-space: pre only
	atomicToken
)

// token is one measured unit of inline content.
type token struct {
	kind  tokenKind
	text  string
	width Fl
	style *style.ComputedStyle
	node  dom.NodeID

	ascent, descent, lineHeight Fl

	box *LayoutBox // atomic tokens only
}

// layoutInlineContent breaks the box's inline content into line boxes and
// returns the resulting content height. Lines are stored on the box in
// absolute coordinates.
func (e *Engine) layoutInlineContent(box *LayoutBox, absContainer *LayoutBox) Fl {
	d := box.Dimensions
	lb := &lineBreaker{
		engine: e,
		box:    box,
		x0:     d.Content.X,
		avail:  d.Content.Width,
		y:      d.Content.Y,
	}
	lb.curX = lb.x0

	tokens := e.collectTokens(box, d.Content.Width, absContainer, nil)
	for _, t := range tokens {
		switch t.kind {
		case spaceToken:
			lb.space(t)
		case breakToken:
			lb.hardBreak()
		default:
			lb.place(t)
		}
	}
	lb.flush(false)
	return lb.y - d.Content.Y
}

// collectTokens flattens the inline subtree into measured tokens in
// document order. Inline-block children are laid out here so their
// advance width is known before line breaking.
func (e *Engine) collectTokens(box *LayoutBox, avail Fl, absContainer *LayoutBox, out []token) []token {
	for _, child := range box.Children {
		if !child.InFlow() {
			e.absolutes = append(e.absolutes, pendingAbsolute{box: child, container: absContainer})
			continue
		}
		switch {
		case child.Node != dom.None && !e.tree.Doc.IsElement(child.Node):
			out = e.tokenizeText(child.Style, e.tree.Doc.Node(child.Node).Text, child.Node, out)
		case child.Type == InlineBlockBox, child.Type == ReplacedBox:
			if child.Type == ReplacedBox {
				e.layoutReplaced(child, avail)
			} else {
				e.layoutAtomic(child, avail, absContainer)
			}
			mb := child.Dimensions.MarginBox()
			out = append(out, token{
				kind:       atomicToken,
				width:      mb.Width,
				style:      child.Style,
				node:       child.Node,
				ascent:     mb.Height,
				lineHeight: mb.Height,
				box:        child,
			})
		default:
			out = e.collectTokens(child, avail, absContainer, out)
		}
	}
	return out
}

// tokenizeText cuts a text node into word and space tokens. In the normal
// whitespace mode every whitespace run collapses to one breakable space;
// in pre mode spaces keep their width and newlines force line breaks.
func (e *Engine) tokenizeText(st *style.ComputedStyle, content string, node dom.NodeID, out []token) []token {
	asc, desc, lh := e.lineMetricsFor(st, node)
	word := func(w string) token {
		return token{
			kind: wordToken, text: w, width: e.measureWord(st, w, node),
			style: st, node: node, ascent: asc, descent: desc, lineHeight: lh,
		}
	}
	space := func(s string, n int) token {
		return token{
			kind: spaceToken, text: s, width: Fl(n) * e.measureSpace(st, node),
			style: st, node: node, ascent: asc, descent: desc, lineHeight: lh,
		}
	}

	if st.WhiteSpace == style.WhiteSpacePre {
		for i, line := range strings.Split(content, "\n") {
			if i > 0 {
				out = append(out, token{kind: breakToken, style: st, node: node})
			}
			rest := line
			for rest != "" {
				if cut := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' }); cut != 0 {
					end := cut
					if end == -1 {
						end = len(rest)
					}
					out = append(out, word(rest[:end]))
					rest = rest[end:]
				} else {
					end := 0
					for end < len(rest) && rest[end] == ' ' {
						end++
					}
					out = append(out, space(rest[:end], end))
					rest = rest[end:]
				}
			}
		}
		return out
	}

	rest := content
	for rest != "" {
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
			rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
			out = append(out, space(" ", 1))
		} else {
			end := strings.IndexFunc(rest, unicode.IsSpace)
			if end == -1 {
				end = len(rest)
			}
			out = append(out, word(rest[:end]))
			rest = rest[end:]
		}
	}
	return out
}

func (e *Engine) measureWord(st *style.ComputedStyle, w string, node dom.NodeID) Fl {
	adv, ok := e.metrics.WordAdvance(st.FontDescription(), w)
	if !ok {
		e.rec.Record(diagnostics.MissingGlyphMetric, node,
			"no advance for %q in %q, using fallback", w, st.FontFamily)
		return Fl(len([]rune(w))) * text.FallbackGlyphAdvance * st.FontSize
	}
	return adv
}

func (e *Engine) measureSpace(st *style.ComputedStyle, node dom.NodeID) Fl {
	adv, ok := e.metrics.SpaceAdvance(st.FontDescription())
	if !ok {
		e.rec.Record(diagnostics.MissingGlyphMetric, node,
			"no space advance in %q, using fallback", st.FontFamily)
		return text.FallbackSpaceAdvance * st.FontSize
	}
	return adv
}

// lineMetricsFor combines the provider's vertical metrics with the
// computed line-height: an explicit line-height wins, "normal" takes the
// provider's recommendation.
func (e *Engine) lineMetricsFor(st *style.ComputedStyle, node dom.NodeID) (ascent, descent, lineHeight Fl) {
	lm, ok := e.metrics.LineMetrics(st.FontDescription())
	if !ok {
		e.rec.Record(diagnostics.MissingGlyphMetric, node,
			"no line metrics in %q, using fallback", st.FontFamily)
		lm = text.LineMetrics{
			Ascent:     text.FallbackAscent * st.FontSize,
			Descent:    text.FallbackDescent * st.FontSize,
			LineHeight: text.FallbackLineHeight * st.FontSize,
		}
	}
	lineHeight = lm.LineHeight
	if st.LineHeight > 0 || st.LineHeightFactor > 0 {
		lineHeight = st.UsedLineHeight()
	} else {
		lineHeight = utils.MaxF(lineHeight, lm.Ascent+lm.Descent)
	}
	return lm.Ascent, lm.Descent, lineHeight
}

// atomicPlacement defers the vertical alignment of an inline-block until
// the line's baseline is known.
type atomicPlacement struct {
	box *LayoutBox
	x   Fl
}

// lineBreaker accumulates tokens greedily onto the current line. Spaces
// are held pending and only committed when a following token fits, so a
// trailing space never participates in the overflow test and leading
// collapsed spaces vanish at line starts.
type lineBreaker struct {
	engine *Engine
	box    *LayoutBox

	x0, avail Fl
	y         Fl
	curX      Fl

	runs    []TextRun
	atomics []atomicPlacement
	pend    []token

	maxAscent, maxDescent, maxLineHeight Fl
}

func (lb *lineBreaker) lineEmpty() bool {
	return len(lb.runs) == 0 && len(lb.atomics) == 0
}

func (lb *lineBreaker) space(t token) {
	if t.style.WhiteSpace == style.WhiteSpacePre {
		// preserved spaces commit immediately, even at line starts
		lb.commit(t)
		return
	}
	// collapse across node boundaries: one pending space at a time
	if len(lb.pend) > 0 {
		return
	}
	if lb.lineEmpty() {
		return
	}
	if last := len(lb.runs) - 1; last >= 0 && lb.runs[last].Space && len(lb.atomics) == 0 {
		return
	}
	lb.pend = append(lb.pend, t)
}

// place commits a word or atomic token, breaking the line first when the
// token and its pending spaces would overflow. A token never breaks off
// an empty line: it is placed with overflow so layout always progresses.
func (lb *lineBreaker) place(t token) {
	pendWidth := Fl(0)
	for _, p := range lb.pend {
		pendWidth += p.width
	}
	overflow := lb.curX + pendWidth + t.width - (lb.x0 + lb.avail)
	if !lb.lineEmpty() && t.style.WhiteSpace != style.WhiteSpacePre && overflow > lineEpsilon {
		lb.flush(false)
	}
	if !lb.lineEmpty() {
		for _, p := range lb.pend {
			lb.commit(p)
		}
	}
	lb.pend = nil
	lb.commit(t)
}

func (lb *lineBreaker) commit(t token) {
	if t.kind == atomicToken {
		lb.atomics = append(lb.atomics, atomicPlacement{box: t.box, x: lb.curX})
	} else {
		lb.runs = append(lb.runs, TextRun{
			Text:  t.text,
			X:     lb.curX,
			Width: t.width,
			Space: t.kind == spaceToken,
			Style: t.style,
			Node:  t.node,
		})
	}
	lb.curX += t.width
	lb.maxAscent = utils.MaxF(lb.maxAscent, t.ascent)
	lb.maxDescent = utils.MaxF(lb.maxDescent, t.descent)
	lb.maxLineHeight = utils.MaxF(lb.maxLineHeight, t.lineHeight)
}

// hardBreak closes the current line unconditionally, producing an empty
// line of strut height when nothing was placed.
func (lb *lineBreaker) hardBreak() {
	lb.flush(true)
}

// flush finalizes the current line: its height is the maximum line-height
// of its tokens, the baseline centers the half-leading, and text-align
// shifts the committed runs within the available width.
func (lb *lineBreaker) flush(force bool) {
	if lb.lineEmpty() && !force {
		lb.pend = nil
		return
	}
	height := lb.maxLineHeight
	ascent, descent := lb.maxAscent, lb.maxDescent
	if lb.lineEmpty() {
		// empty forced line keeps the container's strut height
		ascent, descent, height = lb.engine.lineMetricsFor(lb.box.Style, lb.box.Node)
	}
	leading := utils.ClampPositive(height - (ascent + descent))
	baseline := lb.y + leading/2 + ascent

	var dx Fl
	switch lineWidth := lb.curX - lb.x0; lb.box.Style.TextAlign {
	case "center":
		dx = utils.ClampPositive(lb.avail-lineWidth) / 2
	case "right":
		dx = utils.ClampPositive(lb.avail - lineWidth)
	}
	for i := range lb.runs {
		lb.runs[i].X += dx
	}
	for _, a := range lb.atomics {
		mb := a.box.Dimensions.MarginBox()
		a.box.shift(a.x+dx-mb.X, baseline-mb.Height-mb.Y)
	}

	lb.box.Lines = append(lb.box.Lines, LineBox{
		Y:        lb.y,
		Height:   height,
		Baseline: baseline,
		Runs:     lb.runs,
	})

	lb.y += height
	lb.curX = lb.x0
	lb.runs = nil
	lb.atomics = nil
	lb.pend = nil
	lb.maxAscent, lb.maxDescent, lb.maxLineHeight = 0, 0, 0
}
