package main

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/fcurrie/badge-ripple/internal/config"
	"github.com/fcurrie/badge-ripple/internal/output"
	"github.com/fcurrie/badge-ripple/internal/ripple"
)

// consoleStrip shares the console with run so the tests can see what was
// written while the device was open
type consoleStrip struct {
	out     *bytes.Buffer
	flushes int
	onFlush func(n int)
}

func (s *consoleStrip) SetPixel(index int, c color.RGBA) {}

func (s *consoleStrip) Flush() error {
	s.flushes++
	if s.onFlush != nil {
		s.onFlush(s.flushes)
	}
	return nil
}

func (s *consoleStrip) Close() error {
	s.out.WriteString("<closed>\n")
	return nil
}

type releasedButton struct{}

func (releasedButton) Pressed() (bool, error) { return false, nil }

func TestRunStopsAfterDevicesClose(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strip := &consoleStrip{out: &out}
	strip.onFlush = func(n int) {
		if n == 2 {
			cancel()
		}
	}
	open := func(cfg *config.Config, onQuit func()) (*output.Devices, error) {
		out.WriteString("<opened>\n")
		return &output.Devices{Strip: strip, Button: releasedButton{}}, nil
	}

	cfg := config.DefaultConfig()
	cfg.Output = config.OutputTerminal
	err := run(ctx, cfg, cancel, open, &out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("run() error = %v, want context.Canceled", err)
	}

	got := out.String()
	want := "Framework Badge - MEOW Button Rainbow Ripple\n" +
		"Press CENTER button for rainbow ripple effect!\n" +
		"Press Ctrl+C to stop\n" +
		"<opened>\n" +
		"<closed>\n" +
		"Stopping...\n"
	if got != want {
		t.Errorf("console =\n%s\nwant\n%s", got, want)
	}
	// clear on start, one idle frame, clear on stop
	if strip.flushes != 3 {
		t.Errorf("flushes = %d, want 3", strip.flushes)
	}
}

func TestRunSnapshotIsQuiet(t *testing.T) {
	var out bytes.Buffer
	strip := &consoleStrip{out: &out}
	open := func(cfg *config.Config, onQuit func()) (*output.Devices, error) {
		return &output.Devices{Strip: strip}, nil
	}

	cfg := config.DefaultConfig()
	cfg.Output = config.OutputSnapshot
	cfg.Effects[ripple.RainbowName] = config.EffectConfig{DurationMs: 20, FrameIntervalMs: 5}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := run(ctx, cfg, cancel, open, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := out.String(); got != "<closed>\n" {
		t.Errorf("console = %q, want only the device closing", got)
	}
	if strip.flushes == 0 {
		t.Error("snapshot run showed no frames")
	}
}

func TestRunOpenError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("no strip")
	open := func(cfg *config.Config, onQuit func()) (*output.Devices, error) {
		return nil, boom
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := run(ctx, config.DefaultConfig(), cancel, open, &out); !errors.Is(err, boom) {
		t.Fatalf("run() error = %v, want %v", err, boom)
	}
	if strings.Contains(out.String(), "Stopping...") {
		t.Error("run() reported stopping after a failed open")
	}
}
