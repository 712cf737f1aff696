package ledmatrix

import (
	"fmt"
	"math"
)

// MaxBrightness is the fraction of full intensity any pixel may be driven at.
// The badge regulator browns out if many pixels run near full white.
const MaxBrightness = 0.15

// MaxChannel is the largest channel value a single wave front can produce
var MaxChannel = uint8(math.Floor(255 * MaxBrightness))

// RGB is a single pixel value
type RGB struct {
	R, G, B uint8
}

// Black is an unlit pixel
var Black = RGB{}

// RGBA implements color.Color
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Add blends two pixels additively, saturating each channel at 255
func (c RGB) Add(o RGB) RGB {
	return RGB{
		R: addSat(c.R, o.R),
		G: addSat(c.G, o.G),
		B: addSat(c.B, o.B),
	}
}

// Packed returns the pixel as 0x00RRGGBB
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

func addSat(a, b uint8) uint8 {
	if s := int(a) + int(b); s < 255 {
		return uint8(s)
	}
	return 255
}

// Scale maps a 0-1 intensity onto the safe brightness range
func Scale(intensity float64) float64 {
	return intensity * MaxBrightness
}

// HSVToRGB converts an HSV color to RGB.
// h is in degrees and wraps modulo 360, s and v are in [0,1].
// Channels are truncated, not rounded.
func HSVToRGB(h, s, v float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{R: channel(r + m), G: channel(g + m), B: channel(b + m)}
}

func channel(f float64) uint8 {
	n := int(f * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
