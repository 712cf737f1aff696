// Package snapshot records every flushed frame as a PNG picture of the badge.
package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

// DefaultScale is the size of one LED in the picture, in pixels
const DefaultScale = 16

// CaptionHeight is the band under the LEDs holding the frame number
const CaptionHeight = 16

const background = "#101010"

var (
	board = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 255}
	ink   = color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 255}
)

// Config holds the recorder settings
type Config struct {
	Dir   string
	Scale int
}

// Recorder is an LED strip that writes pictures instead of driving LEDs
type Recorder struct {
	dir    string
	scale  int
	pixels [ledmatrix.NumLEDs]color.RGBA
	seq    int
	mu     sync.Mutex
}

// NewRecorder creates the output directory
func NewRecorder(cfg Config) (*Recorder, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("snapshot directory is required")
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", cfg.Dir, err)
	}

	log.Printf("Recording frames to %s", cfg.Dir)
	return &Recorder{dir: cfg.Dir, scale: cfg.Scale}, nil
}

// SetPixel buffers the color of one LED
func (r *Recorder) SetPixel(index int, c color.RGBA) {
	if index < 0 || index >= ledmatrix.NumLEDs {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pixels[index] = c
}

// Flush writes the buffered LEDs as the next numbered picture
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := ledmatrix.Cols*r.scale, ledmatrix.Rows*r.scale
	img, err := Rasterize(SVG(r.pixels[:], r.scale), w, h)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("frame-%05d", r.seq)
	pic := Caption(img, name)

	path := filepath.Join(r.dir, name+".png")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, pic); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	r.seq++
	return nil
}

// Frames returns how many pictures have been written
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Close does nothing; every picture is complete once Flush returns
func (r *Recorder) Close() error {
	return nil
}

// SVG draws the strip as round LEDs on a dark board.
// pixels are in strip order.
func SVG(pixels []color.RGBA, scale int) []byte {
	w, h := ledmatrix.Cols*scale, ledmatrix.Rows*scale
	radius := float64(scale) * 0.4

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, w, h, background)
	for i, c := range pixels {
		x, y := ledmatrix.ToCoord(i)
		cx := float64(x*scale) + float64(scale)/2
		cy := float64(y*scale) + float64(scale)/2
		fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="#%02x%02x%02x"/>`, cx, cy, radius, c.R, c.G, c.B)
	}
	b.WriteString(`</svg>`)
	return b.Bytes()
}

// Rasterize renders an SVG document to a w x h image
func Rasterize(svg []byte, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse frame svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// Caption returns img with a text band added underneath
func Caption(img *image.RGBA, label string) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()+CaptionHeight))
	draw.Draw(out, out.Bounds(), image.NewUniform(board), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)

	d := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(ink),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, b.Dy()+CaptionHeight-4),
	}
	d.DrawString(label)
	return out
}
