package style

import (
	"sort"
	"strconv"
	"strings"

	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/diagnostics"
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/utils"
)

// StyledTree pairs a document with one computed style per node. Text nodes
// share the style of their parent element.
type StyledTree struct {
	Doc    *dom.Document
	styles []*ComputedStyle
}

func (t *StyledTree) Style(id dom.NodeID) *ComputedStyle { return t.styles[id] }

// Resolver computes styles. Resolution is a pure function of the node
// ancestry and the matched rules: identical inputs yield identical results.
type Resolver struct {
	doc          *dom.Document
	sheet        *css.Stylesheet
	vw, vh       Fl
	rootFontSize Fl
	rec          *diagnostics.Recorder
}

// NewResolver prepares a resolver for one document and stylesheet. The
// viewport size is needed for vw/vh font sizes only; box dimensions keep
// their units for the layout engine.
func NewResolver(doc *dom.Document, sheet *css.Stylesheet, viewportWidth, viewportHeight Fl, rec *diagnostics.Recorder) *Resolver {
	return &Resolver{
		doc:          doc,
		sheet:        sheet,
		vw:           viewportWidth,
		vh:           viewportHeight,
		rootFontSize: initialFontSize,
		rec:          rec,
	}
}

// ResolveAll computes the style of every node in tree order, so parents
// are resolved before their children for inheritance.
func (r *Resolver) ResolveAll() *StyledTree {
	tree := &StyledTree{Doc: r.doc, styles: make([]*ComputedStyle, r.doc.Size())}
	root := r.Resolve(r.doc.Root(), nil)
	r.rootFontSize = root.FontSize
	tree.styles[r.doc.Root()] = root
	r.resolveChildren(tree, r.doc.Root(), root)
	return tree
}

func (r *Resolver) resolveChildren(tree *StyledTree, parent dom.NodeID, parentStyle *ComputedStyle) {
	for _, child := range r.doc.Node(parent).Children {
		if !r.doc.IsElement(child) {
			tree.styles[child] = parentStyle
			continue
		}
		st := r.Resolve(child, parentStyle)
		tree.styles[child] = st
		r.resolveChildren(tree, child, st)
	}
}

// styleAttrSpecificity ranks style attribute declarations above any
// author selector.
var styleAttrSpecificity = css.Specificity{1 << 20, 0, 0}

type matchedRule struct {
	origin css.Origin
	spec   css.Specificity
	order  int
	decls  []css.Declaration
}

// Resolve computes the style of one element against its parent's computed
// style. Matching rules are sorted by (origin, specificity, source order)
// ascending and applied in that order so the heaviest declaration wins;
// !important declarations are applied in a second pass over the same
// ordering, user-agent importants last.
func (r *Resolver) Resolve(node dom.NodeID, parent *ComputedStyle) *ComputedStyle {
	matches := r.matchRules(node)

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.origin != b.origin {
			return a.origin < b.origin
		}
		if a.spec != b.spec {
			return a.spec.Less(b.spec)
		}
		return a.order < b.order
	})

	state := cascadeState{
		resolver: r,
		node:     node,
		parent:   parent,
		out:      Inherit(parent),
	}
	for _, m := range matches {
		for _, d := range m.decls {
			if !d.Important {
				state.apply(d)
			}
		}
	}
	for _, origin := range [...]css.Origin{css.Author, css.UserAgent} {
		for _, m := range matches {
			if m.origin != origin {
				continue
			}
			for _, d := range m.decls {
				if d.Important {
					state.apply(d)
				}
			}
		}
	}
	state.finish()
	return state.out
}

func (r *Resolver) matchRules(node dom.NodeID) []matchedRule {
	var matches []matchedRule
	for i := range r.sheet.Rules {
		rule := &r.sheet.Rules[i]
		if rule.Selector.Match(r.doc, node) {
			matches = append(matches, matchedRule{
				origin: rule.Origin,
				spec:   rule.Specificity,
				order:  rule.Order,
				decls:  rule.Declarations,
			})
		}
	}
	if styleAttr, ok := r.doc.Attr(node, "style"); ok {
		if decls := css.ParseDeclarations(styleAttr); len(decls) != 0 {
			matches = append(matches, matchedRule{
				origin: css.Author,
				spec:   styleAttrSpecificity,
				order:  len(r.sheet.Rules),
				decls:  decls,
			})
		}
	}
	return matches
}

// cascadeState applies declarations onto one style under construction.
// line-height is deferred: its em values resolve against the element's own
// final font size, independently of declaration order.
type cascadeState struct {
	resolver *Resolver
	node     dom.NodeID
	parent   *ComputedStyle
	out      *ComputedStyle

	lineHeight    css.Value
	hasLineHeight bool
}

func (s *cascadeState) fallback(decl css.Declaration, reason error) {
	s.resolver.rec.Record(diagnostics.ParseFallback, s.node,
		"ignored '%s: %s': %s", decl.Name, decl.Value, reason)
}

func (s *cascadeState) parentFontSize() Fl {
	if s.parent != nil {
		return s.parent.FontSize
	}
	return initialFontSize
}

func (s *cascadeState) apply(decl css.Declaration) {
	out := s.out
	switch decl.Name {
	case "display":
		switch decl.Value {
		case "block":
			out.Display = Block
		case "inline":
			out.Display = Inline
		case "inline-block":
			out.Display = InlineBlock
		case "none":
			out.Display = None
		default:
			s.fallback(decl, errUnsupportedKeyword)
		}
	case "position":
		switch decl.Value {
		case "static":
			out.Position = Static
		case "relative":
			out.Position = Relative
		case "absolute":
			out.Position = Absolute
		case "fixed":
			out.Position = Fixed
		default:
			s.fallback(decl, errUnsupportedKeyword)
		}
	case "visibility":
		switch decl.Value {
		case "visible":
			out.Visibility = Visible
		case "hidden":
			out.Visibility = Hidden
		default:
			s.fallback(decl, errUnsupportedKeyword)
		}
	case "white-space":
		switch decl.Value {
		case "normal":
			out.WhiteSpace = WhiteSpaceNormal
		case "pre":
			out.WhiteSpace = WhiteSpacePre
		default:
			s.fallback(decl, errUnsupportedKeyword)
		}
	case "text-align":
		switch decl.Value {
		case "left", "right", "center":
			out.TextAlign = decl.Value
		default:
			s.fallback(decl, errUnsupportedKeyword)
		}
	case "width":
		s.setLength(&out.Width, decl, true)
	case "height":
		s.setLength(&out.Height, decl, true)
	case "margin":
		s.setEdgeShorthand(&out.Margin, decl, true)
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		s.setLength(&out.Margin[edgeOf(decl.Name)], decl, true)
	case "padding":
		s.setEdgeShorthand(&out.Padding, decl, false)
	case "padding-top", "padding-right", "padding-bottom", "padding-left":
		s.setLength(&out.Padding[edgeOf(decl.Name)], decl, false)
	case "border-width":
		s.setEdgeShorthand(&out.BorderWidth, borderWidthDecl(decl), false)
	case "border-top-width", "border-right-width", "border-bottom-width", "border-left-width":
		s.setLength(&out.BorderWidth[edgeOf(decl.Name)], borderWidthDecl(decl), false)
	case "border":
		s.applyBorderShorthand(decl)
	case "border-color":
		s.setColor(&out.BorderColor, decl)
	case "color":
		s.setColor(&out.Color, decl)
	case "background-color", "background":
		s.setColor(&out.BackgroundColor, decl)
	case "font-family":
		out.FontFamily = strings.Trim(strings.TrimSpace(decl.Value), `"'`)
	case "font-size":
		s.applyFontSize(decl)
	case "font-weight":
		s.applyFontWeight(decl)
	case "font-style":
		switch decl.Value {
		case "normal":
			out.FontItalic = false
		case "italic", "oblique":
			out.FontItalic = true
		default:
			s.fallback(decl, errUnsupportedKeyword)
		}
	case "line-height":
		v, err := css.ParseValue(decl.Value)
		if err != nil {
			s.fallback(decl, err)
			return
		}
		s.lineHeight, s.hasLineHeight = v, true
	case "z-index":
		if decl.Value == "auto" {
			out.HasZIndex = false
			return
		}
		n, err := strconv.Atoi(decl.Value)
		if err != nil {
			s.fallback(decl, err)
			return
		}
		out.ZIndex, out.HasZIndex = n, true
	case "top", "right", "bottom", "left":
		s.setLength(&out.Offset[edgeOf(decl.Name)], decl, true)
	default:
		// not modeled yet: kept in the escape hatch so hosts can read it
		v, err := css.ParseValue(decl.Value)
		if err != nil {
			return
		}
		if out.Extra == nil {
			out.Extra = make(map[string]css.Value)
		}
		out.Extra[decl.Name] = v
	}
}

// finish resolves the deferred line-height against the final font size.
func (s *cascadeState) finish() {
	if !s.hasLineHeight {
		return
	}
	out := s.out
	switch v := s.lineHeight; v.Kind {
	case css.ValueKeyword:
		if v.Keyword == "normal" {
			out.LineHeight, out.LineHeightFactor = 0, 0
		}
	case css.ValueNumber:
		out.LineHeight, out.LineHeightFactor = 0, v.Number
	case css.ValueDimension:
		switch v.Dimension.Unit {
		case css.Px:
			out.LineHeight, out.LineHeightFactor = v.Dimension.Value, 0
		case css.Em:
			out.LineHeight, out.LineHeightFactor = v.Dimension.Value*out.FontSize, 0
		case css.Perc:
			out.LineHeight, out.LineHeightFactor = v.Dimension.Value*out.FontSize/100, 0
		}
	}
}

func (s *cascadeState) applyFontSize(decl css.Declaration) {
	v, err := css.ParseValue(decl.Value)
	if err != nil {
		s.fallback(decl, err)
		return
	}
	if v.Kind != css.ValueDimension {
		s.fallback(decl, errUnsupportedKeyword)
		return
	}
	size, ok := s.resolver.resolveFontLength(v.Dimension, s.parentFontSize())
	if !ok || size < 0 {
		s.fallback(decl, errUnsupportedKeyword)
		return
	}
	s.out.FontSize = size
}

func (s *cascadeState) applyFontWeight(decl css.Declaration) {
	switch decl.Value {
	case "normal":
		s.out.FontWeight = WeightNormal
	case "bold":
		s.out.FontWeight = WeightBold
	default:
		n, err := strconv.Atoi(decl.Value)
		if err != nil || n < 1 || n > 1000 {
			s.fallback(decl, errUnsupportedKeyword)
			return
		}
		s.out.FontWeight = n
	}
}

// resolveFontLength computes a font-relative length to absolute pixels.
func (r *Resolver) resolveFontLength(d css.Dimension, parentSize Fl) (Fl, bool) {
	switch d.Unit {
	case css.Px:
		return d.Value, true
	case css.Em:
		return d.Value * parentSize, true
	case css.Perc:
		return d.Value * parentSize / 100, true
	case css.Rem:
		return d.Value * r.rootFontSize, true
	case css.Vw:
		return d.Value * r.vw / 100, true
	case css.Vh:
		return d.Value * r.vh / 100, true
	default:
		return 0, false
	}
}

// setLength stores a length value, optionally accepting "auto".
func (s *cascadeState) setLength(dst *css.Value, decl css.Declaration, allowAuto bool) {
	v, err := css.ParseValue(decl.Value)
	if err != nil {
		s.fallback(decl, err)
		return
	}
	if !isLength(v, allowAuto) {
		s.fallback(decl, errUnsupportedKeyword)
		return
	}
	*dst = v
}

func (s *cascadeState) setColor(dst *css.Color, decl css.Declaration) {
	c, err := css.ParseColor(decl.Value)
	if err != nil {
		s.fallback(decl, err)
		return
	}
	*dst = c
}

// setEdgeShorthand expands 1 to 4 values into top/right/bottom/left.
func (s *cascadeState) setEdgeShorthand(dst *[4]css.Value, decl css.Declaration, allowAuto bool) {
	fields := strings.Fields(decl.Value)
	if len(fields) == 0 || len(fields) > 4 {
		s.fallback(decl, errUnsupportedKeyword)
		return
	}
	values := make([]css.Value, len(fields))
	for i, f := range fields {
		v, err := css.ParseValue(f)
		if err != nil {
			s.fallback(decl, err)
			return
		}
		if !isLength(v, allowAuto) {
			s.fallback(decl, errUnsupportedKeyword)
			return
		}
		values[i] = v
	}
	expandEdges(dst, values)
}

// expandEdges applies the CSS shorthand repetition rules.
func expandEdges(dst *[4]css.Value, values []css.Value) {
	switch len(values) {
	case 1:
		dst[Top], dst[Right], dst[Bottom], dst[Left] = values[0], values[0], values[0], values[0]
	case 2:
		dst[Top], dst[Bottom] = values[0], values[0]
		dst[Right], dst[Left] = values[1], values[1]
	case 3:
		dst[Top], dst[Right], dst[Bottom] = values[0], values[1], values[2]
		dst[Left] = values[1]
	case 4:
		dst[Top], dst[Right], dst[Bottom], dst[Left] = values[0], values[1], values[2], values[3]
	}
}

// applyBorderShorthand reads "border: <width> <style> <color>" parts in any
// order; the line style is accepted but not painted, except "none" which
// zeroes the width.
func (s *cascadeState) applyBorderShorthand(decl css.Declaration) {
	out := s.out
	for _, field := range strings.Fields(decl.Value) {
		if w, ok := borderWidthKeyword(field); ok {
			expandEdges(&out.BorderWidth, []css.Value{w})
			continue
		}
		if c, err := css.ParseColor(field); err == nil {
			out.BorderColor = c
			continue
		}
		v, err := css.ParseValue(field)
		if err != nil {
			s.fallback(decl, err)
			return
		}
		switch {
		case v.Kind == css.ValueDimension:
			expandEdges(&out.BorderWidth, []css.Value{v})
		case v.Kind == css.ValueKeyword && v.Keyword == "none":
			expandEdges(&out.BorderWidth, []css.Value{css.PxValue(0)})
		case v.Kind == css.ValueKeyword && borderStyles.Has(v.Keyword):
			// line styles other than solid degrade to solid
		default:
			s.fallback(decl, errUnsupportedKeyword)
			return
		}
	}
}

// borderWidthDecl maps the thin/medium/thick keywords before length parsing.
func borderWidthDecl(decl css.Declaration) css.Declaration {
	fields := strings.Fields(decl.Value)
	for i, f := range fields {
		if w, ok := borderWidthKeyword(f); ok {
			fields[i] = strconv.FormatFloat(w.Dimension.Value, 'f', -1, 64) + "px"
		}
	}
	decl.Value = strings.Join(fields, " ")
	return decl
}

func borderWidthKeyword(s string) (css.Value, bool) {
	switch s {
	case "thin":
		return css.PxValue(1), true
	case "medium":
		return css.PxValue(3), true
	case "thick":
		return css.PxValue(5), true
	}
	return css.Value{}, false
}

var borderStyles = utils.NewSet(
	"solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset", "hidden")

func isLength(v css.Value, allowAuto bool) bool {
	switch v.Kind {
	case css.ValueDimension:
		return true
	case css.ValueNumber:
		return v.Number == 0 // bare 0 is a valid length
	case css.ValueAuto:
		return allowAuto
	default:
		return false
	}
}

func edgeOf(property string) Edge {
	switch {
	case strings.HasSuffix(property, "top") || strings.Contains(property, "-top-"):
		return Top
	case strings.HasSuffix(property, "right") || strings.Contains(property, "-right-"):
		return Right
	case strings.HasSuffix(property, "bottom") || strings.Contains(property, "-bottom-"):
		return Bottom
	default:
		return Left
	}
}

type cascadeError string

func (e cascadeError) Error() string { return string(e) }

const errUnsupportedKeyword cascadeError = "invalid or unsupported value"
