// Package output opens the LED sink and button named by the configuration.
package output

import (
	"fmt"

	"github.com/fcurrie/badge-ripple/internal/config"
	"github.com/fcurrie/badge-ripple/internal/snapshot"
	"github.com/fcurrie/badge-ripple/internal/termsim"
	"github.com/fcurrie/badge-ripple/internal/types"
	"github.com/fcurrie/badge-ripple/pkg/gpio"
	"github.com/fcurrie/badge-ripple/pkg/ws281x"
)

// Devices is an opened strip and, except for snapshot output, its button.
// The strip is closed by whoever wraps it in a matrix.
type Devices struct {
	Strip  types.Strip
	Button types.Button
	closer func() error
}

// Open opens the devices for cfg.Output. onQuit is handed to the terminal
// simulator, which owns the keyboard.
func Open(cfg *config.Config, onQuit func()) (*Devices, error) {
	switch cfg.Output {
	case config.OutputWS281x:
		return openHardware(cfg)
	case config.OutputTerminal:
		screen, err := termsim.New(onQuit)
		if err != nil {
			return nil, fmt.Errorf("failed to open terminal: %w", err)
		}
		return &Devices{Strip: screen, Button: screen}, nil
	case config.OutputSnapshot:
		rec, err := snapshot.NewRecorder(cfg.Recorder())
		if err != nil {
			return nil, err
		}
		return &Devices{Strip: rec}, nil
	default:
		return nil, fmt.Errorf("unknown output %q", cfg.Output)
	}
}

func openHardware(cfg *config.Config) (*Devices, error) {
	strip, err := ws281x.New(cfg.WS281x())
	if err != nil {
		return nil, fmt.Errorf("failed to open strip: %w", err)
	}

	button, err := gpio.NewButton(cfg.GPIO())
	if err != nil {
		strip.Close()
		return nil, fmt.Errorf("failed to open button: %w", err)
	}

	return &Devices{Strip: strip, Button: button, closer: button.Close}, nil
}

// Close releases the button
func (d *Devices) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer()
}
