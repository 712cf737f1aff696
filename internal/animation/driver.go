// Package animation runs ripple effects on the matrix at a steady frame rate.
package animation

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fcurrie/badge-ripple/internal/types"
	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

// Effect renders a full frame for a point in time
type Effect interface {
	Name() string
	Duration() time.Duration
	Interval() time.Duration
	Render(elapsed time.Duration, f *ledmatrix.Frame)
}

// Display shows complete frames
type Display interface {
	Show(f *ledmatrix.Frame) error
}

// Driver plays effects on a display.
// It never clears the display when an effect ends; that is up to the caller.
type Driver struct {
	display Display
	clock   Clock
	state   types.EffectState
	frames  int
}

// NewDriver creates a driver for display paced by clock
func NewDriver(display Display, clock Clock) *Driver {
	if clock == nil {
		clock = RealClock{}
	}
	return &Driver{
		display: display,
		clock:   clock,
		state:   types.EffectDone,
	}
}

// Run plays e until its duration has elapsed.
// ctx is only checked between frames.
func (d *Driver) Run(ctx context.Context, e Effect) error {
	start := d.clock.Now()
	sched := NewScheduler(d.clock, e.Interval())
	d.state = types.EffectRunning
	d.frames = 0
	defer func() { d.state = types.EffectDone }()

	log.Debugf("Starting %s effect for %v at %v per frame", e.Name(), e.Duration(), e.Interval())

	var frame ledmatrix.Frame
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		elapsed := d.clock.Now().Sub(start)
		if elapsed >= e.Duration() {
			break
		}

		e.Render(elapsed, &frame)
		if err := d.display.Show(&frame); err != nil {
			return fmt.Errorf("failed to show %s frame %d: %w", e.Name(), d.frames, err)
		}
		d.frames++

		sched.Wait()
	}

	log.Debugf("Finished %s effect after %d frames", e.Name(), d.frames)
	return nil
}

// State returns whether an effect is running
func (d *Driver) State() types.EffectState {
	return d.state
}

// Frames returns the number of frames shown by the last run
func (d *Driver) Frames() int {
	return d.frames
}

// Clock returns the driver's time source
func (d *Driver) Clock() Clock {
	return d.clock
}
