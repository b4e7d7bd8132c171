// Package shade blends hex colors for cosmetic tile shading.
package shade

import colorful "github.com/lucasb-eyer/go-colorful"

const (
	// brightenStep is the amount that Lighten adds to the L channel of the Lab color space.
	brightenStep = 0.18
	// DefaultTint is the fraction of the second color used by Tint when a non-positive fraction is given.
	DefaultTint = 0.25
)

// Lighten brightens the hex color.
// Colors that cannot be parsed are returned unchanged.
func Lighten(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	l, a, b := c.Lab()
	l += brightenStep
	if l > 1 {
		l = 1
	}
	return colorful.Lab(l, a, b).Clamped().Hex()
}

// Tint mixes the fraction of hex2 into hex in linear RGB space.
// If either color cannot be parsed, the first color is returned unchanged.
func Tint(hex, hex2 string, fraction float64) string {
	c1, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	c2, err := colorful.Hex(hex2)
	if err != nil {
		return hex
	}
	if fraction <= 0 {
		fraction = DefaultTint
	}
	if fraction > 1 {
		fraction = 1
	}
	return c1.BlendLinearRgb(c2, fraction).Clamped().Hex()
}
