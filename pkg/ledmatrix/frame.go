package ledmatrix

// Frame holds the next value for every pixel, indexed by strip position
type Frame [NumLEDs]RGB

// Set sets the pixel at a strip index. Out of range indices are ignored.
func (f *Frame) Set(index int, c RGB) {
	if index < 0 || index >= NumLEDs {
		return
	}
	f[index] = c
}

// SetXY sets the pixel at x,y. Coordinates off the matrix are ignored.
func (f *Frame) SetXY(x, y int, c RGB) {
	if i, ok := ToIndex(x, y); ok {
		f.Set(i, c)
	}
}

// At returns the pixel at x,y, or black when off the matrix
func (f *Frame) At(x, y int) RGB {
	if i, ok := ToIndex(x, y); ok {
		return f[i]
	}
	return Black
}

// Clear turns every pixel off
func (f *Frame) Clear() {
	*f = Frame{}
}

// Lit returns the number of pixels that are not black
func (f *Frame) Lit() int {
	n := 0
	for _, c := range f {
		if c != Black {
			n++
		}
	}
	return n
}
