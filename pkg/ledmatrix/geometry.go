package ledmatrix

import "math"

const (
	// Cols is the number of columns on the badge matrix
	Cols = 15
	// Rows is the number of rows on the badge matrix
	Rows = 7
	// NumLEDs is the total number of addressable pixels
	NumLEDs = Cols * Rows
)

// ToIndex converts x,y coordinates to a strip index.
// The strip is wired in columns, top to bottom, left to right: column 0
// holds indices 0-6, column 1 holds 7-13 and so on. Coordinates outside
// the matrix report ok == false.
func ToIndex(x, y int) (index int, ok bool) {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return 0, false
	}
	return x*Rows + y, true
}

// ToCoord converts a strip index back to x,y coordinates
func ToCoord(index int) (x, y int) {
	return index / Rows, index % Rows
}

// Center returns the middle pixel of the matrix
func Center() (x, y int) {
	return Cols / 2, Rows / 2
}

// Distance returns the Euclidean distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
