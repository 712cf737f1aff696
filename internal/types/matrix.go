package types

import "image/color"

// Strip is an addressable LED chain
type Strip interface {
	// SetPixel buffers the color for the LED at index
	SetPixel(index int, c color.RGBA)
	// Flush pushes the buffered colors to the hardware
	Flush() error
	// Close releases the device
	Close() error
}

// Button is a digital push button input
type Button interface {
	// Pressed reports whether the button is currently held down
	Pressed() (bool, error)
}
