package speedy

import (
	"image/color"

	"github.com/gogpu/gputypes"
)

// Color is a straight-alpha color with red, green, blue and alpha
// components in the range [0, 1].
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	ColorTransparent = Color{}
	ColorBlack       = Color{R: 0, G: 0, B: 0, A: 1}
	ColorWhite       = Color{R: 1, G: 1, B: 1, A: 1}
	ColorRed         = Color{R: 1, G: 0, B: 0, A: 1}
	ColorGreen       = Color{R: 0, G: 1, B: 0, A: 1}
	ColorBlue        = Color{R: 0, G: 0, B: 1, A: 1}
	ColorYellow      = Color{R: 1, G: 1, B: 0, A: 1}
	ColorCyan        = Color{R: 0, G: 1, B: 1, A: 1}
	ColorMagenta     = Color{R: 1, G: 0, B: 1, A: 1}
	ColorGray        = Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	ColorLightGray   = Color{R: 0.75, G: 0.75, B: 0.75, A: 1}
	ColorDarkGray    = Color{R: 0.25, G: 0.25, B: 0.25, A: 1}
)

// RGBA creates a color from float components, clamped to [0, 1].
func RGBA(r, g, b, a float32) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: clamp01(a)}
}

// RGB creates an opaque color from float components.
func RGB(r, g, b float32) Color {
	return RGBA(r, g, b, 1)
}

// Gray creates an opaque gray color of the given brightness.
func Gray(brightness float32) Color {
	return RGB(brightness, brightness, brightness)
}

// RGBA8 creates a color from 8-bit components.
func RGBA8(r, g, b, a uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: float32(a) / 255}
}

// HexRGB creates an opaque color from a 0xRRGGBB value.
func HexRGB(rgb uint32) Color {
	return RGBA8(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), 255)
}

// HexARGB creates a color from a 0xAARRGGBB value.
func HexARGB(argb uint32) Color {
	return RGBA8(uint8(argb>>16), uint8(argb>>8), uint8(argb), uint8(argb>>24))
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. Malformed digits are read as zero.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3:
		r, g, b = parseHex(hex[0:1])*17, parseHex(hex[1:2])*17, parseHex(hex[2:3])*17
	case 4:
		r, g, b, a = parseHex(hex[0:1])*17, parseHex(hex[1:2])*17, parseHex(hex[2:3])*17, parseHex(hex[3:4])*17
	case 6:
		r, g, b = parseHex(hex[0:2]), parseHex(hex[2:4]), parseHex(hex[4:6])
	case 8:
		r, g, b, a = parseHex(hex[0:2]), parseHex(hex[2:4]), parseHex(hex[4:6]), parseHex(hex[6:8])
	default:
		return ColorBlack
	}

	return RGBA8(uint8(r), uint8(g), uint8(b), uint8(a))
}

func parseHex(s string) uint32 {
	var v uint32
	for _, c := range s {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			v |= uint32(c - 'A' + 10)
		}
	}
	return v
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8(n.R, n.G, n.B, n.A)
}

// NRGBA converts c to a standard non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: toByte(c.A)}
}

// Mul multiplies two colors component-wise. This is the tint operation.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Premultiplied returns the color with RGB multiplied by alpha.
func (c Color) Premultiplied() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// GPU converts c to a gputypes color, used for render pass clear values.
func (c Color) GPU() gputypes.Color {
	return gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

func clamp01(x float32) float32 {
	if x < 0 || x != x {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toByte(x float32) uint8 {
	return uint8(clamp01(x)*255 + 0.5)
}
