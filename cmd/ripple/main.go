package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/fcurrie/badge-ripple/internal/animation"
	"github.com/fcurrie/badge-ripple/internal/config"
	"github.com/fcurrie/badge-ripple/internal/controller"
	"github.com/fcurrie/badge-ripple/internal/output"
	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

func main() {
	cfg, source, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config from %s: %v", source, err)
		log.Printf("Using default configuration")
		cfg, source = config.DefaultConfig(), "defaults"
	}
	log.SetLevel(cfg.Level())
	log.Debugf("Configuration from %s", source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	err = run(ctx, cfg, cancel, output.Open, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Ripple stopped: %v", err)
	}
	fmt.Println("Done! Goodbye!")
}

// opener opens the configured strip and button
type opener func(cfg *config.Config, onQuit func()) (*output.Devices, error)

// run writes to out only while no device owns the terminal: the banner
// before the devices open and the stop message after they are closed.
func run(ctx context.Context, cfg *config.Config, cancel context.CancelFunc, open opener, out io.Writer) error {
	effect, err := cfg.NewEffect()
	if err != nil {
		return err
	}
	log.Debugf("Playing %s with %+v", effect.Name(), effect.Params())

	if cfg.Output != config.OutputSnapshot {
		fmt.Fprintln(out, "Framework Badge - MEOW Button Rainbow Ripple")
		fmt.Fprintln(out, "Press CENTER button for rainbow ripple effect!")
		fmt.Fprintln(out, "Press Ctrl+C to stop")
	}

	err = play(ctx, cfg, cancel, open, effect)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "Stopping...")
	}
	return err
}

func play(ctx context.Context, cfg *config.Config, cancel context.CancelFunc, open opener, effect animation.Effect) error {
	dev, err := open(cfg, cancel)
	if err != nil {
		return err
	}
	defer dev.Close()

	matrix, err := ledmatrix.NewMatrix(dev.Strip)
	if err != nil {
		return err
	}
	defer matrix.Close()

	driver := animation.NewDriver(matrix, animation.RealClock{})

	// Snapshot output has no button: record one run of the effect
	if dev.Button == nil {
		if err := driver.Run(ctx, effect); err != nil {
			return err
		}
		log.Printf("Recorded %d %s frames", driver.Frames(), effect.Name())
		return nil
	}

	ctl, err := controller.New(cfg.Controller(), dev.Button, matrix, driver, effect)
	if err != nil {
		return err
	}

	err = ctl.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if cerr := matrix.Clear(); cerr != nil {
			log.Printf("Failed to clear display: %v", cerr)
		}
	}
	return err
}
