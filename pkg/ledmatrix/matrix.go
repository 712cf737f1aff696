package ledmatrix

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/fcurrie/badge-ripple/internal/types"
)

// Matrix is the badge LED matrix on top of a strip device
type Matrix struct {
	strip  types.Strip
	buffer Frame
	mu     sync.Mutex
}

// NewMatrix creates a new matrix writing to strip
func NewMatrix(strip types.Strip) (*Matrix, error) {
	if strip == nil {
		return nil, fmt.Errorf("matrix needs an output strip")
	}
	return &Matrix{strip: strip}, nil
}

// Close closes the underlying strip
func (m *Matrix) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.strip != nil {
		return m.strip.Close()
	}
	return nil
}

// SetPixel buffers a pixel's color without flushing it.
// Coordinates off the matrix are ignored.
func (m *Matrix) SetPixel(x, y int, c RGB) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buffer.SetXY(x, y, c)
}

// Flush pushes the buffered pixels to the strip
func (m *Matrix) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.show()
}

// Show replaces the whole buffer with f and pushes it to the strip
func (m *Matrix) Show(f *Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buffer = *f
	return m.show()
}

// Fill sets every pixel to c and pushes it to the strip
func (m *Matrix) Fill(c RGB) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.buffer {
		m.buffer[i] = c
	}
	return m.show()
}

// Clear turns every pixel off
func (m *Matrix) Clear() error {
	return m.Fill(Black)
}

// Buffer returns a copy of the buffered pixels
func (m *Matrix) Buffer() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.buffer
}

// show assumes the mutex is already locked
func (m *Matrix) show() error {
	for i, c := range m.buffer {
		m.strip.SetPixel(i, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	if err := m.strip.Flush(); err != nil {
		return fmt.Errorf("failed to flush strip: %w", err)
	}
	return nil
}
