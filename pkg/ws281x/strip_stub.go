//go:build !pi

package ws281x

import (
	"errors"
	"image/color"
)

// ErrUnsupported is returned by New in builds without the pi tag
var ErrUnsupported = errors.New("ws281x output needs a build with -tags pi")

// Strip is unavailable in this build
type Strip struct{}

// New always fails in this build
func New(cfg Config) (*Strip, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return nil, ErrUnsupported
}

// SetPixel does nothing
func (s *Strip) SetPixel(index int, c color.RGBA) {}

// Flush does nothing
func (s *Strip) Flush() error { return ErrUnsupported }

// Close does nothing
func (s *Strip) Close() error { return nil }
