package ledmatrix

import (
	"errors"
	"image/color"
	"testing"
)

type fakeStrip struct {
	pixels  [NumLEDs]color.RGBA
	flushes int
	closed  bool
	err     error
}

func (s *fakeStrip) SetPixel(index int, c color.RGBA) { s.pixels[index] = c }

func (s *fakeStrip) Flush() error {
	s.flushes++
	return s.err
}

func (s *fakeStrip) Close() error {
	s.closed = true
	return nil
}

// TestNewMatrix tests the creation of a new matrix
func TestNewMatrix(t *testing.T) {
	tests := []struct {
		name    string
		strip   *fakeStrip
		wantErr bool
	}{
		{name: "valid strip", strip: &fakeStrip{}, wantErr: false},
		{name: "missing strip", strip: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var matrix *Matrix
			var err error
			if tt.strip == nil {
				matrix, err = NewMatrix(nil)
			} else {
				matrix, err = NewMatrix(tt.strip)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMatrix() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && matrix == nil {
				t.Error("NewMatrix() returned nil matrix when no error expected")
			}
		})
	}
}

// TestMatrixOperations tests basic matrix operations
func TestMatrixOperations(t *testing.T) {
	strip := &fakeStrip{}
	matrix, err := NewMatrix(strip)
	if err != nil {
		t.Fatalf("Failed to create matrix: %v", err)
	}

	red := RGB{38, 0, 0}
	matrix.SetPixel(1, 0, red)
	if strip.flushes != 0 {
		t.Errorf("SetPixel() flushed the strip")
	}
	if err := matrix.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := strip.pixels[7]; got != (color.RGBA{38, 0, 0, 255}) {
		t.Errorf("strip pixel 7 = %v, want red", got)
	}

	// Out of bounds writes are dropped
	matrix.SetPixel(-1, 0, red)
	matrix.SetPixel(Cols, 0, red)
	matrix.SetPixel(0, Rows, red)
	buf := matrix.Buffer()
	if n := buf.Lit(); n != 1 {
		t.Errorf("Lit() = %d after out of bounds writes, want 1", n)
	}

	var f Frame
	f.SetXY(14, 6, RGB{0, 0, 20})
	if err := matrix.Show(&f); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if got := strip.pixels[7]; got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Show() kept stale pixel 7 = %v", got)
	}
	if got := strip.pixels[104]; got != (color.RGBA{0, 0, 20, 255}) {
		t.Errorf("strip pixel 104 = %v", got)
	}

	if err := matrix.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for i, c := range strip.pixels {
		if c.R|c.G|c.B != 0 {
			t.Fatalf("pixel %d = %v after Clear()", i, c)
		}
	}
	if strip.flushes != 3 {
		t.Errorf("flushes = %d, want 3", strip.flushes)
	}

	if err := matrix.Close(); err != nil || !strip.closed {
		t.Errorf("Close() error = %v, closed = %v", err, strip.closed)
	}
}

func TestMatrixFlushError(t *testing.T) {
	boom := errors.New("bus fault")
	matrix, err := NewMatrix(&fakeStrip{err: boom})
	if err != nil {
		t.Fatalf("Failed to create matrix: %v", err)
	}
	if err := matrix.Fill(RGB{1, 2, 3}); !errors.Is(err, boom) {
		t.Errorf("Fill() error = %v, want %v", err, boom)
	}
}

func TestFrame(t *testing.T) {
	var f Frame
	f.Set(-1, RGB{1, 1, 1})
	f.Set(NumLEDs, RGB{1, 1, 1})
	f.SetXY(20, 20, RGB{1, 1, 1})
	if f.Lit() != 0 {
		t.Fatalf("out of range writes lit %d pixels", f.Lit())
	}

	f.SetXY(2, 5, RGB{3, 4, 5})
	if got := f.At(2, 5); got != (RGB{3, 4, 5}) {
		t.Errorf("At(2, 5) = %v", got)
	}
	if got := f[19]; got != (RGB{3, 4, 5}) {
		t.Errorf("f[19] = %v, want the pixel at (2, 5)", got)
	}
	if got := f.At(-1, 0); got != Black {
		t.Errorf("At(-1, 0) = %v, want black", got)
	}

	f.Clear()
	if f.Lit() != 0 {
		t.Errorf("Clear() left %d pixels lit", f.Lit())
	}
}
