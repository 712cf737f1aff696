package ripple

import (
	"fmt"
	"sort"
	"time"

	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

// Effect names
const (
	SingleName  = "single"
	MultiName   = "multi"
	RainbowName = "rainbow"
)

// DefaultSingle is a single ripple that sweeps the rainbow as it spreads
var DefaultSingle = Params{
	Duration:      3 * time.Second,
	FrameInterval: 50 * time.Millisecond,
	Speed:         3,
	Envelope:      1.5,
	HuePerPixel:   30,
	HuePerSecond:  100,
}

// DefaultMulti is the centre plus corners ripple, one color per source
var DefaultMulti = Params{
	Duration:      5 * time.Second,
	FrameInterval: 50 * time.Millisecond,
	Speed:         4,
	Envelope:      1.5,
	HuePerPixel:   30,
	StrictStart:   true,
}

// DefaultRainbow is the button ripple with a fading trail behind the front
var DefaultRainbow = Params{
	Duration:      2500 * time.Millisecond,
	FrameInterval: 40 * time.Millisecond,
	Speed:         5,
	Envelope:      2.0,
	HuePerPixel:   40,
	HuePerSecond:  60,
	Trail: &Trail{
		Length:      5,
		Saturation:  0.8,
		Level:       0.3,
		HuePerPixel: 40,
	},
}

// MultiStagger is the start offset between consecutive multi ripple sources
const MultiStagger = 300 * time.Millisecond

// multiHueStep spreads the multi ripple sources around the color wheel
const multiHueStep = 72

// Single creates a ripple spreading from x,y
func Single(x, y int, p Params) *Effect {
	return New(SingleName, p, Ripple{X: float64(x), Y: float64(y)})
}

// Multi creates staggered ripples from the centre and the four corners
func Multi(p Params) *Effect {
	cx, cy := ledmatrix.Center()
	centers := [][2]int{
		{cx, cy},
		{0, 0},
		{ledmatrix.Cols - 1, 0},
		{0, ledmatrix.Rows - 1},
		{ledmatrix.Cols - 1, ledmatrix.Rows - 1},
	}

	ripples := make([]Ripple, len(centers))
	for i, c := range centers {
		ripples[i] = Ripple{
			X:       float64(c[0]),
			Y:       float64(c[1]),
			Delay:   time.Duration(i) * MultiStagger,
			HueBias: float64(i * multiHueStep),
		}
	}
	return New(MultiName, p, ripples...)
}

// Rainbow creates the trailing rainbow ripple from the centre of the matrix
func Rainbow(p Params) *Effect {
	cx, cy := ledmatrix.Center()
	return New(RainbowName, p, Ripple{X: float64(cx), Y: float64(cy)})
}

// Defaults returns the default parameters for every effect by name
func Defaults() map[string]Params {
	return map[string]Params{
		SingleName:  DefaultSingle,
		MultiName:   DefaultMulti,
		RainbowName: DefaultRainbow,
	}
}

// Names returns the known effect names in order
func Names() []string {
	names := make([]string, 0, 3)
	for name := range Defaults() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds a named effect. The single ripple starts at the centre.
func Lookup(name string, p Params) (*Effect, error) {
	switch name {
	case SingleName:
		cx, cy := ledmatrix.Center()
		return Single(cx, cy, p), nil
	case MultiName:
		return Multi(p), nil
	case RainbowName:
		return Rainbow(p), nil
	}
	return nil, fmt.Errorf("unknown effect %q", name)
}
