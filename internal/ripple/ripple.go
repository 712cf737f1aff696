// Package ripple computes expanding wave fronts on the badge matrix.
//
// Every effect is a pure function of the time since it started: Render
// fills a frame from scratch and never looks at the previous one.
package ripple

import (
	"math"
	"time"

	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

// Ripple is a single wave front source
type Ripple struct {
	X, Y float64
	// Delay holds the ripple back after the effect starts
	Delay time.Duration
	// HueBias shifts the ripple's hue in degrees
	HueBias float64
}

// Trail lights the pixels a wave front has already passed
type Trail struct {
	Length      float64 // pixels behind the front until fully dark
	Saturation  float64
	Level       float64 // fraction of the safety ceiling
	HuePerPixel float64
}

// Params are the per effect tunables
type Params struct {
	Duration      time.Duration
	FrameInterval time.Duration
	// Speed is the wave front velocity in pixels per second
	Speed float64
	// Envelope is the thickness of the lit band either side of the front
	Envelope     float64
	HuePerPixel  float64
	HuePerSecond float64
	// StrictStart keeps a ripple dark until strictly after its start time
	StrictStart bool
	Trail       *Trail
}

// Effect is a set of ripples rendered with shared parameters
type Effect struct {
	name    string
	params  Params
	ripples []Ripple
}

// New creates an effect from its parameters and sources
func New(name string, p Params, ripples ...Ripple) *Effect {
	return &Effect{name: name, params: p, ripples: ripples}
}

// Name returns the effect name
func (e *Effect) Name() string { return e.name }

// Duration returns how long the effect runs
func (e *Effect) Duration() time.Duration { return e.params.Duration }

// Interval returns the target time between frames
func (e *Effect) Interval() time.Duration { return e.params.FrameInterval }

// Params returns the effect's tunables
func (e *Effect) Params() Params { return e.params }

// Ripples returns the effect's sources
func (e *Effect) Ripples() []Ripple { return e.ripples }

// Intensity returns the brightness of a pixel offset pixels away from the
// wave front: 1 on the front, falling linearly to 0 at the envelope edge.
func Intensity(offset, envelope float64) float64 {
	if offset >= envelope {
		return 0
	}
	return clamp((envelope-offset)/envelope, 0, 1)
}

// Render fills f with the effect at elapsed time since it started
func (e *Effect) Render(elapsed time.Duration, f *ledmatrix.Frame) {
	for x := 0; x < ledmatrix.Cols; x++ {
		for y := 0; y < ledmatrix.Rows; y++ {
			f.SetXY(x, y, e.pixel(float64(x), float64(y), elapsed))
		}
	}
}

// Frame renders the effect into a new frame
func (e *Effect) Frame(elapsed time.Duration) ledmatrix.Frame {
	var f ledmatrix.Frame
	e.Render(elapsed, &f)
	return f
}

func (e *Effect) pixel(x, y float64, elapsed time.Duration) ledmatrix.RGB {
	p := e.params
	total := ledmatrix.Black

	for _, r := range e.ripples {
		t := elapsed - r.Delay
		if t < 0 || (p.StrictStart && t == 0) {
			continue
		}
		dist := ledmatrix.Distance(r.X, r.Y, x, y)
		wavePos := t.Seconds() * p.Speed
		offset := math.Abs(dist - wavePos)

		switch {
		case offset < p.Envelope:
			hue := r.HueBias + dist*p.HuePerPixel + elapsed.Seconds()*p.HuePerSecond
			v := ledmatrix.Scale(Intensity(offset, p.Envelope))
			total = total.Add(ledmatrix.HSVToRGB(hue, 1.0, v))
		case p.Trail != nil && dist < wavePos:
			fade := math.Max(0, 1-(wavePos-dist)/p.Trail.Length)
			v := ledmatrix.Scale(fade) * p.Trail.Level
			total = total.Add(ledmatrix.HSVToRGB(dist*p.Trail.HuePerPixel, p.Trail.Saturation, v))
		}
	}

	return total
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
