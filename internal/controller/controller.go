// Package controller turns button presses into ripple effects.
package controller

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fcurrie/badge-ripple/internal/animation"
	"github.com/fcurrie/badge-ripple/internal/types"
	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

// DefaultPoll is how often a held button is checked for release
const DefaultPoll = 10 * time.Millisecond

// Display is the matrix as seen by the controller
type Display interface {
	animation.Display
	SetPixel(x, y int, c ledmatrix.RGB)
	Flush() error
	Clear() error
}

// Config holds the controller timing
type Config struct {
	Debounce time.Duration
	Poll     time.Duration
}

// Controller runs an effect each time the button is pressed and a
// breathing centre pixel in between
type Controller struct {
	button   types.Button
	display  Display
	driver   *animation.Driver
	clock    animation.Clock
	effect   animation.Effect
	debounce *Debouncer
	poll     time.Duration
	state    types.ControllerState
	triggers int
}

// New creates a controller. The driver's clock is used for debouncing and polling.
func New(cfg Config, button types.Button, display Display, driver *animation.Driver, effect animation.Effect) (*Controller, error) {
	if button == nil || display == nil || driver == nil || effect == nil {
		return nil, fmt.Errorf("controller needs a button, display, driver and effect")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Poll <= 0 {
		cfg.Poll = DefaultPoll
	}

	return &Controller{
		button:   button,
		display:  display,
		driver:   driver,
		clock:    driver.Clock(),
		effect:   effect,
		debounce: NewDebouncer(cfg.Debounce),
		poll:     cfg.Poll,
		state:    types.StateIdle,
	}, nil
}

// Run clears the display and handles the button until ctx is done or a
// device fails
func (c *Controller) Run(ctx context.Context) error {
	if err := c.display.Clear(); err != nil {
		return fmt.Errorf("failed to clear display: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Step(ctx); err != nil {
			return err
		}
	}
}

// Step handles a press if the button is down, then plays one idle cycle and
// handles a press that arrives during it
func (c *Controller) Step(ctx context.Context) error {
	pressed, err := c.button.Pressed()
	if err != nil {
		return fmt.Errorf("failed to read button: %w", err)
	}
	if pressed {
		if err := c.press(ctx); err != nil {
			return err
		}
	}

	pressed, err = c.idle(ctx)
	if err != nil {
		return fmt.Errorf("idle animation failed: %w", err)
	}
	if pressed {
		return c.press(ctx)
	}
	return nil
}

func (c *Controller) press(ctx context.Context) error {
	c.state = types.StatePressed
	if !c.debounce.Allow(c.clock.Now()) {
		log.Debug("Ignoring button bounce")
		c.state = types.StateIdle
		return nil
	}

	c.state = types.StateTriggered
	c.triggers++
	log.Infof("MEOW! %s ripple triggered", c.effect.Name())

	if err := c.driver.Run(ctx, c.effect); err != nil {
		return err
	}
	if err := c.display.Clear(); err != nil {
		return fmt.Errorf("failed to clear display: %w", err)
	}
	if err := c.waitRelease(ctx); err != nil {
		return err
	}

	c.state = types.StateIdle
	return nil
}

// waitRelease blocks while the button is held so one press fires once
func (c *Controller) waitRelease(ctx context.Context) error {
	for {
		pressed, err := c.button.Pressed()
		if err != nil {
			return fmt.Errorf("failed to read button: %w", err)
		}
		if !pressed {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		c.clock.Sleep(c.poll)
	}
}

// State returns the controller state
func (c *Controller) State() types.ControllerState {
	return c.state
}

// Triggers returns how many presses started an effect
func (c *Controller) Triggers() int {
	return c.triggers
}
