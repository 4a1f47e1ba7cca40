package ggprint

import (
	"image/color"
	"strconv"
	"strings"
)

// Color is an opaque 8-bit RGB colour. Page output has no alpha channel,
// so translucent sources are flattened before they reach a page device.
type Color struct {
	R, G, B uint8
}

// RGB creates a colour from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Gray creates a neutral grey of the given level.
func Gray(level uint8) Color {
	return Color{R: level, G: level, B: level}
}

// Color converts c to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Float returns the components scaled to [0, 1].
func (c Color) Float() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// IsGray reports whether all three components are equal.
func (c Color) IsGray() bool {
	return c.R == c.G && c.G == c.B
}

// FromColor converts a standard color.Color to Color, compositing any
// transparency over white.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	// Premultiplied components over a white background.
	bg := 0xffff - a
	return Color{
		R: uint8((r + bg) >> 8),
		G: uint8((g + bg) >> 8),
		B: uint8((b + bg) >> 8),
	}
}

// Hex parses "#rgb" or "#rrggbb" (the '#' is optional). Malformed
// strings yield black.
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black
	}
	switch len(s) {
	case 3:
		return RGB(uint8(v>>8&0xf)*17, uint8(v>>4&0xf)*17, uint8(v&0xf)*17)
	case 6:
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
	}
	return Black
}

// Common colors
var (
	Black      = RGB(0, 0, 0)
	White      = RGB(255, 255, 255)
	Red        = RGB(255, 0, 0)
	Green      = RGB(0, 255, 0)
	Blue       = RGB(0, 0, 255)
	Yellow     = RGB(255, 255, 0)
	Cyan       = RGB(0, 255, 255)
	Magenta    = RGB(255, 0, 255)
	Background = RGB(192, 192, 192)
)
