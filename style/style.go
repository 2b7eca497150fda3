// Package style annotates every document node with a value for every
// supported CSS property, resolving the cascade (specificity, then source
// order, with a separate pass for !important) and inheritance.
package style

import (
	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/text"
	"github.com/inkwellrender/inkwell/utils"
)

type Fl = utils.Fl

// Display is the outer display kind of a box. It is an open enumeration:
// later layout modes extend it without restructuring existing boxes.
type Display uint8

const (
	Inline Display = iota // CSS initial value
	Block
	InlineBlock
	None
)

type Position uint8

const (
	Static Position = iota
	Relative
	Absolute
	Fixed
)

type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
)

type WhiteSpace uint8

const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpacePre
)

// Edge indexes the four sides of the box edges arrays.
type Edge uint8

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// Font weights used by the resolver; intermediate numeric weights are kept
// as given.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// ComputedStyle holds one resolved value per supported property: a closed,
// typed record so that every property is covered at compile time. The
// Extra map is the escape hatch for properties not modeled yet.
//
// Lengths that depend on the containing block (width, margins, ...) are
// kept as css.Value and resolved by the layout engine; font properties are
// fully resolved here because inheritance needs their absolute value.
type ComputedStyle struct {
	Display    Display
	Position   Position
	Visibility Visibility
	WhiteSpace WhiteSpace

	Width, Height css.Value
	Margin        [4]css.Value
	Padding       [4]css.Value
	BorderWidth   [4]css.Value
	Offset        [4]css.Value // top, right, bottom, left

	Color           css.Color
	BackgroundColor css.Color
	BorderColor     css.Color

	FontFamily string
	FontSize   Fl
	FontWeight int
	FontItalic bool

	// LineHeight is an explicit length; LineHeightFactor a bare multiplier.
	// Both zero means "normal".
	LineHeight       Fl
	LineHeightFactor Fl

	TextAlign string

	ZIndex    int
	HasZIndex bool

	Extra map[string]css.Value
}

const (
	initialFontSize   = 16
	normalLineHeight  = 1.2
	initialFontFamily = "sans-serif"
)

// NewInitial returns a style holding the initial value of every property.
func NewInitial() *ComputedStyle {
	return &ComputedStyle{
		Width:      css.AutoValue,
		Height:     css.AutoValue,
		Margin:     zeroEdges(),
		Padding:    zeroEdges(),
		Offset:     autoEdges(),
		Color:      css.Black,
		// border-width initial is medium, but it only paints once a border
		// is declared; keeping 0 matches the painted result
		FontFamily: initialFontFamily,
		FontSize:   initialFontSize,
		FontWeight: WeightNormal,
	}
}

// Inherit returns the style a child starts from: inherited properties copy
// the parent's computed value, the rest take their initial value.
func Inherit(parent *ComputedStyle) *ComputedStyle {
	out := NewInitial()
	if parent == nil {
		return out
	}
	out.Color = parent.Color
	out.FontFamily = parent.FontFamily
	out.FontSize = parent.FontSize
	out.FontWeight = parent.FontWeight
	out.FontItalic = parent.FontItalic
	out.LineHeight = parent.LineHeight
	out.LineHeightFactor = parent.LineHeightFactor
	out.TextAlign = parent.TextAlign
	out.Visibility = parent.Visibility
	out.WhiteSpace = parent.WhiteSpace
	return out
}

func zeroEdges() [4]css.Value {
	z := css.PxValue(0)
	return [4]css.Value{z, z, z, z}
}

func autoEdges() [4]css.Value {
	return [4]css.Value{css.AutoValue, css.AutoValue, css.AutoValue, css.AutoValue}
}

// UsedLineHeight resolves the line-height against the font size.
func (s *ComputedStyle) UsedLineHeight() Fl {
	if s.LineHeight > 0 {
		return s.LineHeight
	}
	if s.LineHeightFactor > 0 {
		return s.LineHeightFactor * s.FontSize
	}
	return normalLineHeight * s.FontSize
}

// FontDescription exposes the font properties as a measurement query.
func (s *ComputedStyle) FontDescription() text.FontDescription {
	slant := text.SlantNormal
	if s.FontItalic {
		slant = text.SlantItalic
	}
	return text.FontDescription{
		Family: s.FontFamily,
		Size:   s.FontSize,
		Weight: s.FontWeight,
		Slant:  slant,
	}
}

// IsPositioned reports whether the box establishes a containing block for
// absolutely positioned descendants.
func (s *ComputedStyle) IsPositioned() bool {
	return s.Position != Static
}
