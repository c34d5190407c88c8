// Package color holds the normalized RGBA record used by the classifiers and
// the parser for the hexadecimal colors found in style descriptions.
package color

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a color with 8-bit channels and a normalized opacity in [0,1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

// Transparent is returned for no-data, style gaps and unparseable colors.
var Transparent = RGBA{}

// Parse parses a #RRGGBB (or #RGB) string. Empty or malformed input yields
// Transparent. The opacity is stored as given.
func Parse(hex string, opacity float64) RGBA {
	c, ok := parse(hex, opacity)
	if !ok {
		return Transparent
	}
	return c
}

// MustParse is like Parse but panics on malformed input.
func MustParse(hex string, opacity float64) RGBA {
	c, ok := parse(hex, opacity)
	if !ok {
		panic(fmt.Sprintf("color: invalid hex color %q", hex))
	}
	return c
}

// Valid reports whether hex would be parsed into a color.
func Valid(hex string) bool {
	_, ok := parse(hex, 1)
	return ok
}

func parse(hex string, opacity float64) (RGBA, bool) {
	if len(hex) != 7 && len(hex) != 4 || hex[0] != '#' {
		return Transparent, false
	}
	for i := 1; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Transparent, false
		}
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Transparent, false
	}
	r, g, b := c.RGB255()
	return RGBA{R: r, G: g, B: b, A: opacity}, true
}

func isHexDigit(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

// AlphaByte returns the opacity scaled to a byte.
func (c RGBA) AlphaByte() uint8 {
	a := math.Round(c.A * 255)
	if a <= 0 || math.IsNaN(a) {
		return 0
	}
	if a >= 255 {
		return 255
	}
	return uint8(a)
}

// Hex formats the color channels as #RRGGBB, ignoring opacity.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Colorful converts the color channels for use with go-colorful.
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func (c RGBA) String() string {
	return fmt.Sprintf("%s@%g", c.Hex(), c.A)
}
