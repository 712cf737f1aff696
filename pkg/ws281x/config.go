// Package ws281x drives a WS2812 style LED chain from a Raspberry Pi.
//
// The hardware driver needs the rpi_ws281x C library and is only built
// with the pi build tag.
package ws281x

import (
	"fmt"
	"image/color"

	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

const (
	// DefaultPin is GPIO18, the PWM pin the library drives by default
	DefaultPin = 18
	// DefaultBrightness leaves scaling to the frame renderer
	DefaultBrightness = 255
)

// Config holds the strip wiring
type Config struct {
	GPIOPin    int
	LedCount   int
	Brightness int
	// StripType is the byte order of the LEDs, "grb" or "rgb"
	StripType string
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.LedCount <= 0 {
		return fmt.Errorf("invalid led count: %d", c.LedCount)
	}
	if c.Brightness < 0 || c.Brightness > 255 {
		return fmt.Errorf("brightness must be between 0 and 255")
	}
	switch c.StripType {
	case "", "grb", "rgb":
	default:
		return fmt.Errorf("unknown strip type %q", c.StripType)
	}
	return nil
}

// pack converts a color to the library's 0x00RRGGBB word
func pack(c color.RGBA) uint32 {
	return ledmatrix.RGB{R: c.R, G: c.G, B: c.B}.Packed()
}
