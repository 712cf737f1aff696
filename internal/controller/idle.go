package controller

import (
	"context"
	"math"
	"time"

	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

const (
	idleFrames   = 20
	idleInterval = 50 * time.Millisecond
	idleHue      = 200
	idleSat      = 0.7
	idleLevel    = 0.5
)

// Breath returns the centre pixel color for frame i of the idle animation
func Breath(i int) ledmatrix.RGB {
	intensity := (math.Sin(float64(i)*0.3) + 1) / 2
	return ledmatrix.HSVToRGB(idleHue, idleSat, ledmatrix.Scale(intensity)*idleLevel)
}

// idle pulses the centre pixel for a short cycle, checking the button
// after every frame. It reports whether the button went down.
func (c *Controller) idle(ctx context.Context) (bool, error) {
	cx, cy := ledmatrix.Center()

	for i := 0; i < idleFrames; i++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		c.display.SetPixel(cx, cy, Breath(i))
		if err := c.display.Flush(); err != nil {
			return false, err
		}
		c.clock.Sleep(idleInterval)

		pressed, err := c.button.Pressed()
		if err != nil {
			return false, err
		}
		if pressed {
			return true, nil
		}
	}
	return false, nil
}
