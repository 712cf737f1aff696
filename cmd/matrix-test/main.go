package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fcurrie/badge-ripple/internal/config"
	"github.com/fcurrie/badge-ripple/internal/output"
	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config file")
	outputName := flag.String("output", "", "override the configured output (ws281x, terminal, snapshot)")
	hold := flag.Duration("hold", 2*time.Second, "how long each pattern is shown")
	sweep := flag.Duration("sweep", 20*time.Millisecond, "per-LED delay of the index sweep")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}
	if *outputName != "" {
		cfg.Output = *outputName
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dev, err := output.Open(cfg, cancel)
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}
	defer dev.Close()

	matrix, err := ledmatrix.NewMatrix(dev.Strip)
	if err != nil {
		log.Fatalf("Failed to create matrix: %v", err)
	}
	defer matrix.Close()

	if err := runPatterns(ctx, matrix, *hold, *sweep); err != nil {
		log.Printf("Test stopped: %v", err)
		return
	}

	fmt.Println("Test completed successfully")
}

func runPatterns(ctx context.Context, matrix *ledmatrix.Matrix, hold, sweep time.Duration) error {
	level := ledmatrix.MaxChannel
	solids := []struct {
		name string
		c    ledmatrix.RGB
	}{
		{"red", ledmatrix.RGB{R: level}},
		{"green", ledmatrix.RGB{G: level}},
		{"blue", ledmatrix.RGB{B: level}},
	}

	for _, s := range solids {
		log.Printf("Setting all pixels to %s %v", s.name, s.c)
		if err := matrix.Fill(s.c); err != nil {
			return fmt.Errorf("failed to show %s: %w", s.name, err)
		}
		if err := pause(ctx, hold); err != nil {
			return err
		}
	}

	log.Println("Setting alternating pixels")
	white := ledmatrix.RGB{R: level, G: level, B: level}
	for i := 0; i < ledmatrix.NumLEDs; i++ {
		x, y := ledmatrix.ToCoord(i)
		if (x+y)%2 == 0 {
			matrix.SetPixel(x, y, white)
		} else {
			matrix.SetPixel(x, y, ledmatrix.Black)
		}
	}
	if err := matrix.Flush(); err != nil {
		return fmt.Errorf("failed to show alternating pixels: %w", err)
	}
	if err := pause(ctx, hold); err != nil {
		return err
	}

	// Walk the strip in wiring order so a miswired column shows up
	log.Println("Sweeping LEDs in strip order")
	if err := matrix.Clear(); err != nil {
		return fmt.Errorf("failed to clear matrix: %w", err)
	}
	for i := 0; i < ledmatrix.NumLEDs; i++ {
		x, y := ledmatrix.ToCoord(i)
		matrix.SetPixel(x, y, ledmatrix.HSVToRGB(float64(x)*24, 1, ledmatrix.MaxBrightness))
		if err := matrix.Flush(); err != nil {
			return fmt.Errorf("failed to show LED %d: %w", i, err)
		}
		if err := pause(ctx, sweep); err != nil {
			return err
		}
	}
	if err := pause(ctx, hold); err != nil {
		return err
	}

	// Clear the matrix
	log.Println("Clearing matrix")
	if err := matrix.Clear(); err != nil {
		return fmt.Errorf("failed to clear matrix: %w", err)
	}
	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
