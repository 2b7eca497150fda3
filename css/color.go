package css

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a device-independent sRGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
)

// IsTransparent reports whether painting c has no visible effect.
func (c Color) IsTransparent() bool { return c.A == 0 }

var namedColors = map[string]Color{
	"transparent": Transparent,
	"black":       Black,
	"white":       White,
	"red":         {R: 255, A: 255},
	"green":       {G: 128, A: 255},
	"lime":        {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"yellow":      {R: 255, G: 255, A: 255},
	"orange":      {R: 255, G: 165, A: 255},
	"purple":      {R: 128, B: 128, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
	"silver":      {R: 192, G: 192, B: 192, A: 255},
	"maroon":      {R: 128, A: 255},
	"navy":        {B: 128, A: 255},
	"teal":        {G: 128, B: 128, A: 255},
	"olive":       {R: 128, G: 128, A: 255},
	"aqua":        {G: 255, B: 255, A: 255},
	"cyan":        {G: 255, B: 255, A: 255},
	"fuchsia":     {R: 255, B: 255, A: 255},
	"magenta":     {R: 255, B: 255, A: 255},
}

// ParseColor parses hexadecimal (#rgb, #rgba, #rrggbb, #rrggbbaa),
// functional (rgb(), rgba()) and named colors.
func ParseColor(input string) (Color, error) {
	c, ok, err := parseColor(strings.TrimSpace(input))
	if err != nil {
		return Color{}, err
	}
	if !ok {
		return Color{}, fmt.Errorf("unsupported color %q", input)
	}
	return c, nil
}

// parseColor returns ok == false when s does not look like a color at all,
// and an error when it does but is malformed.
func parseColor(s string) (Color, bool, error) {
	if strings.HasPrefix(s, "#") {
		c, err := parseHexColor(s[1:])
		return c, err == nil, err
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		c, err := parseRGBColor(lower)
		return c, err == nil, err
	}
	if c, in := namedColors[lower]; in {
		return c, true, nil
	}
	return Color{}, false, nil
}

func parseHexColor(hex string) (Color, error) {
	var digits [8]uint8
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2], 'f', 'f'})
	case 4:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid hex color #%s", hex)
	}
	for i := 0; i < 8; i++ {
		d, err := strconv.ParseUint(string(hex[i]), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color #%s", hex)
		}
		digits[i] = uint8(d)
	}
	return Color{
		R: digits[0]<<4 | digits[1],
		G: digits[2]<<4 | digits[3],
		B: digits[4]<<4 | digits[5],
		A: digits[6]<<4 | digits[7],
	}, nil
}

func parseRGBColor(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	var channels [3]uint8
	for i, p := range parts[:3] {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("invalid color channel %q", p)
		}
		channels[i] = uint8(v)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("invalid alpha %q", parts[3])
		}
		alpha = uint8(a*255 + 0.5)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}
