// Package css implements the small subset of CSS needed by the rendering
// pipeline: typed values, selectors with resolved specificity, and a
// stylesheet parser producing rules in source order.
package css

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inkwellrender/inkwell/utils"
)

type Fl = utils.Fl

// Unit is the unit of a parsed dimension.
type Unit uint8

const (
	Px Unit = iota + 1
	Perc
	Em
	Rem
	Vw
	Vh
)

func (u Unit) String() string {
	switch u {
	case Px:
		return "px"
	case Perc:
		return "%"
	case Em:
		return "em"
	case Rem:
		return "rem"
	case Vw:
		return "vw"
	case Vh:
		return "vh"
	default:
		return "<invalid unit>"
	}
}

// Dimension is a number with a unit.
type Dimension struct {
	Value Fl
	Unit  Unit
}

func (d Dimension) IsNone() bool { return d == Dimension{} }

// ValueKind discriminates the concrete content of a Value.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueAuto
	ValueKeyword
	ValueDimension
	ValueNumber
	ValueColor
)

// Value is one parsed declaration value.
// The zero value is invalid, which encodes "unset".
type Value struct {
	Kind      ValueKind
	Keyword   string
	Dimension Dimension
	Number    Fl
	Color     Color
}

func (v Value) IsNone() bool { return v.Kind == ValueInvalid }

// AutoValue is the parsed "auto" keyword.
var AutoValue = Value{Kind: ValueAuto}

func PxValue(px Fl) Value {
	return Value{Kind: ValueDimension, Dimension: Dimension{Value: px, Unit: Px}}
}

// ParseValue parses a single declaration value: "auto", a dimension,
// a unitless number, a color or a bare keyword.
func ParseValue(input string) (Value, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Value{}, fmt.Errorf("empty value")
	}
	if strings.EqualFold(s, "auto") {
		return AutoValue, nil
	}
	if c, ok, err := parseColor(s); err != nil {
		return Value{}, err
	} else if ok {
		return Value{Kind: ValueColor, Color: c}, nil
	}
	if d, ok, err := parseDimension(s); err != nil {
		return Value{}, err
	} else if ok {
		return Value{Kind: ValueDimension, Dimension: d}, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Value{Kind: ValueNumber, Number: f}, nil
	}
	if isIdent(s) {
		return Value{Kind: ValueKeyword, Keyword: strings.ToLower(s)}, nil
	}
	return Value{}, fmt.Errorf("unsupported value %q", input)
}

var units = map[string]Unit{
	"px": Px, "%": Perc, "em": Em, "rem": Rem, "vw": Vw, "vh": Vh,
}

// parseDimension accepts <number><unit>; ok is false when s does not
// start with a number.
func parseDimension(s string) (Dimension, bool, error) {
	end := 0
	for end < len(s) && (isDigit(s[end]) || s[end] == '.' || s[end] == '-' || s[end] == '+') {
		end++
	}
	if end == 0 {
		return Dimension{}, false, nil
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return Dimension{}, false, fmt.Errorf("invalid number in %q", s)
	}
	unit, ok := units[strings.ToLower(s[end:])]
	if !ok {
		if s[end:] == "" {
			return Dimension{}, false, nil // unitless, handled as a number
		}
		return Dimension{}, false, fmt.Errorf("unknown unit in %q", s)
	}
	return Dimension{Value: f, Unit: unit}, true, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', c == '-', c == '_':
		case isDigit(c) && i > 0:
		default:
			return false
		}
	}
	return len(s) != 0
}
