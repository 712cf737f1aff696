package controller

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/fcurrie/badge-ripple/internal/animation"
	"github.com/fcurrie/badge-ripple/internal/ripple"
	"github.com/fcurrie/badge-ripple/internal/types"
	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type window struct{ from, to time.Duration }

// scriptedButton is held down during the given windows of fake time
type scriptedButton struct {
	clock  *animation.FakeClock
	held   []window
	reads  int
	err    error
	onRead func(n int)
}

func (b *scriptedButton) Pressed() (bool, error) {
	b.reads++
	if b.onRead != nil {
		b.onRead(b.reads)
	}
	if b.err != nil {
		return false, b.err
	}
	at := b.clock.Now().Sub(epoch)
	for _, w := range b.held {
		if at >= w.from && at < w.to {
			return true, nil
		}
	}
	return false, nil
}

type fakeDisplay struct {
	frames  int
	clears  int
	flushes int
	buffer  ledmatrix.Frame
}

func (d *fakeDisplay) Show(f *ledmatrix.Frame) error {
	d.frames++
	d.buffer = *f
	return nil
}

func (d *fakeDisplay) SetPixel(x, y int, c ledmatrix.RGB) { d.buffer.SetXY(x, y, c) }

func (d *fakeDisplay) Flush() error {
	d.flushes++
	return nil
}

func (d *fakeDisplay) Clear() error {
	d.clears++
	d.buffer.Clear()
	return nil
}

// blip is an effect that finishes immediately
var blip = ripple.New("blip", ripple.Params{FrameInterval: 10 * time.Millisecond})

func newController(t *testing.T, held []window, effect animation.Effect) (*Controller, *scriptedButton, *fakeDisplay, *animation.FakeClock) {
	t.Helper()
	clock := animation.NewFakeClock(epoch)
	button := &scriptedButton{clock: clock, held: held}
	display := &fakeDisplay{}
	driver := animation.NewDriver(display, clock)

	c, err := New(Config{}, button, display, driver, effect)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, button, display, clock
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(DefaultDebounce)

	tests := []struct {
		name string
		at   time.Duration
		want bool
	}{
		{name: "first press", at: 0, want: true},
		{name: "bounce", at: 120 * time.Millisecond, want: false},
		{name: "exactly the delay", at: 300 * time.Millisecond, want: false},
		{name: "after the delay", at: 301 * time.Millisecond, want: true},
		{name: "bounce after second press", at: 500 * time.Millisecond, want: false},
	}

	for _, tt := range tests {
		if got := d.Allow(epoch.Add(tt.at)); got != tt.want {
			t.Errorf("%s: Allow(%v) = %v, want %v", tt.name, tt.at, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	clock := animation.NewFakeClock(epoch)
	display := &fakeDisplay{}
	driver := animation.NewDriver(display, clock)
	button := &scriptedButton{clock: clock}

	if _, err := New(Config{}, nil, display, driver, blip); err == nil {
		t.Error("New() without a button did not return error")
	}
	if _, err := New(Config{}, button, display, nil, blip); err == nil {
		t.Error("New() without a driver did not return error")
	}
	c, err := New(Config{}, button, display, driver, blip)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.State() != types.StateIdle {
		t.Errorf("State() = %v, want %v", c.State(), types.StateIdle)
	}
}

func TestPressesWithinDebounceTriggerOnce(t *testing.T) {
	held := []window{
		{0, 5 * time.Millisecond},
		{55 * time.Millisecond, 70 * time.Millisecond},
		{400 * time.Millisecond, 420 * time.Millisecond},
	}
	c, _, _, clock := newController(t, held, blip)

	// Press at 0 triggers, the second press at 60ms lands in the first
	// idle frame and is dropped as bounce
	if err := c.Step(context.Background()); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if c.Triggers() != 1 {
		t.Fatalf("Triggers() = %d after two quick presses, want 1", c.Triggers())
	}
	if got := clock.Now().Sub(epoch); got != 60*time.Millisecond {
		t.Fatalf("first step ended at %v, want 60ms", got)
	}

	// A press well after the window triggers again
	if err := c.Step(context.Background()); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if c.Triggers() != 2 {
		t.Errorf("Triggers() = %d, want 2", c.Triggers())
	}
	if c.State() != types.StateIdle {
		t.Errorf("State() = %v, want %v", c.State(), types.StateIdle)
	}
}

func TestTriggerRunsEffectThenClears(t *testing.T) {
	effect := ripple.Rainbow(ripple.DefaultRainbow)
	c, _, display, _ := newController(t, []window{{0, 5 * time.Millisecond}}, effect)

	var stateDuringEffect types.ControllerState
	c.display = &observingDisplay{fakeDisplay: display, onShow: func() { stateDuringEffect = c.State() }}
	c.driver = animation.NewDriver(c.display, c.clock)

	if err := c.Step(context.Background()); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if display.frames != 63 {
		t.Errorf("effect showed %d frames, want 63", display.frames)
	}
	if display.clears != 1 {
		t.Errorf("display cleared %d times, want 1", display.clears)
	}
	if stateDuringEffect != types.StateTriggered {
		t.Errorf("state during effect = %v, want %v", stateDuringEffect, types.StateTriggered)
	}
}

type observingDisplay struct {
	*fakeDisplay
	onShow func()
}

func (d *observingDisplay) Show(f *ledmatrix.Frame) error {
	d.onShow()
	return d.fakeDisplay.Show(f)
}

func TestHeldButtonDoesNotRetrigger(t *testing.T) {
	c, button, _, clock := newController(t, []window{{0, time.Second}}, blip)

	if err := c.Step(context.Background()); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if c.Triggers() != 1 {
		t.Errorf("Triggers() = %d while held, want 1", c.Triggers())
	}
	if got := clock.Now().Sub(epoch); got < time.Second {
		t.Errorf("step ended at %v, before the button was released", got)
	}
	// one read to see the press, 101 while waiting for release, 20 idle frames
	if button.reads != 122 {
		t.Errorf("button read %d times, want 122", button.reads)
	}
}

func TestIdleBreathing(t *testing.T) {
	c, _, display, clock := newController(t, nil, blip)

	if err := c.Step(context.Background()); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if c.Triggers() != 0 {
		t.Errorf("Triggers() = %d without a press", c.Triggers())
	}
	if display.flushes != idleFrames {
		t.Errorf("idle flushed %d frames, want %d", display.flushes, idleFrames)
	}
	if got := clock.Now().Sub(epoch); got != idleFrames*idleInterval {
		t.Errorf("idle cycle took %v, want %v", got, idleFrames*idleInterval)
	}
	if n := display.buffer.Lit(); n != 1 {
		t.Errorf("idle lit %d pixels, want only the centre", n)
	}
	if display.buffer.At(7, 3) != Breath(idleFrames-1) {
		t.Errorf("centre = %v, want %v", display.buffer.At(7, 3), Breath(idleFrames-1))
	}
}

func TestBreathStaysDim(t *testing.T) {
	limit := uint8(math.Floor(255 * ledmatrix.MaxBrightness * idleLevel))
	for i := 0; i < idleFrames; i++ {
		c := Breath(i)
		if c.R > limit || c.G > limit || c.B > limit {
			t.Errorf("Breath(%d) = %v exceeds %d", i, c, limit)
		}
	}
	if Breath(0) == ledmatrix.Black {
		t.Error("Breath(0) is dark, want half intensity")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c, button, display, _ := newController(t, nil, blip)

	ctx, cancel := context.WithCancel(context.Background())
	button.onRead = func(n int) {
		if n == 30 {
			cancel()
		}
	}

	err := c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if display.clears != 1 {
		t.Errorf("Run() cleared %d times, want once at start", display.clears)
	}
}

func TestButtonErrorIsFatal(t *testing.T) {
	c, button, _, _ := newController(t, nil, blip)
	boom := errors.New("line gone")
	button.err = boom

	if err := c.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}
