package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a normalized RGBA color.
type Color struct {
	R, G, B, A float32
}

// namedColors covers the CSS basic palette plus the aliases model tooling
// commonly emits.
var namedColors = map[string]Color{
	"black":   {0, 0, 0, 1},
	"white":   {1, 1, 1, 1},
	"red":     {1, 0, 0, 1},
	"green":   {0, 0.5, 0, 1},
	"lime":    {0, 1, 0, 1},
	"blue":    {0, 0, 1, 1},
	"yellow":  {1, 1, 0, 1},
	"cyan":    {0, 1, 1, 1},
	"aqua":    {0, 1, 1, 1},
	"magenta": {1, 0, 1, 1},
	"fuchsia": {1, 0, 1, 1},
	"orange":  {1, 0.6470588, 0, 1},
	"purple":  {0.5, 0, 0.5, 1},
	"gray":    {0.5019608, 0.5019608, 0.5019608, 1},
	"grey":    {0.5019608, 0.5019608, 0.5019608, 1},
	"silver":  {0.7529412, 0.7529412, 0.7529412, 1},
	"maroon":  {0.5, 0, 0, 1},
	"navy":    {0, 0, 0.5, 1},
	"teal":    {0, 0.5019608, 0.5019608, 1},
	"olive":   {0.5019608, 0.5019608, 0, 1},
	"pink":    {1, 0.7529412, 0.7960784, 1},
}

// ParseColor parses a named color or a #RGB / #RRGGBB / #RRGGBBAA hex string.
// Names are case-insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	if !strings.HasPrefix(s, "#") {
		if c, ok := namedColors[strings.ToLower(s)]; ok {
			return c, nil
		}
		return Color{}, fmt.Errorf("unknown color name %q", s)
	}

	hex := s[1:]
	switch len(hex) {
	case 3:
		// #RGB expands each digit: #F0A -> #FF00AA
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("bad hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}

	c := Color{A: 1}
	if len(hex) == 8 {
		c.A = float32(v&0xFF) / 255
		v >>= 8
	}
	c.B = float32(v&0xFF) / 255
	c.G = float32(v>>8&0xFF) / 255
	c.R = float32(v>>16&0xFF) / 255
	return c, nil
}

// MustColor parses s and panics on failure. For literals.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as #RRGGBB (alpha dropped).
func (c Color) Hex() string {
	to255 := func(f float32) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return fmt.Sprintf("#%02X%02X%02X", to255(c.R), to255(c.G), to255(c.B))
}
