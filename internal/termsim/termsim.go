// Package termsim shows the badge matrix in a terminal and turns the
// space bar into the badge button, for running without hardware.
package termsim

import (
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
)

// DefaultHold is how long a key press keeps the simulated button down.
// Terminals report key presses but never releases.
const DefaultHold = 150 * time.Millisecond

const (
	cellWidth = 2
	help      = "space: press  q: quit"
)

// Screen is a simulated LED strip and button
type Screen struct {
	screen  tcell.Screen
	pixels  [ledmatrix.NumLEDs]color.RGBA
	hold    time.Duration
	now     func() time.Time
	onQuit  func()
	mu      sync.Mutex
	pressed time.Time
	done    chan struct{}
}

// New opens the terminal. onQuit is called when q, Esc or Ctrl-C is typed,
// since the terminal swallows the interrupt signal in raw mode.
func New(onQuit func()) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(screen, onQuit), nil
}

// NewWithScreen wraps an initialised tcell screen
func NewWithScreen(screen tcell.Screen, onQuit func()) *Screen {
	s := &Screen{
		screen: screen,
		hold:   DefaultHold,
		now:    time.Now,
		onQuit: onQuit,
		done:   make(chan struct{}),
	}
	screen.Clear()
	go s.events()
	return s
}

func (s *Screen) events() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			s.handleKey(ev.Key(), ev.Rune())
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

func (s *Screen) handleKey(key tcell.Key, r rune) {
	switch {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		s.quit()
	case key == tcell.KeyRune && r == 'q':
		s.quit()
	case key == tcell.KeyRune && r == ' ', key == tcell.KeyEnter:
		s.mu.Lock()
		s.pressed = s.now()
		s.mu.Unlock()
	}
}

func (s *Screen) quit() {
	if s.onQuit != nil {
		s.onQuit()
	}
}

// Pressed reports whether a key went down within the hold time
func (s *Screen) Pressed() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pressed.IsZero() {
		return false, nil
	}
	return s.now().Sub(s.pressed) < s.hold, nil
}

// SetPixel buffers the color of one LED
func (s *Screen) SetPixel(index int, c color.RGBA) {
	if index < 0 || index >= ledmatrix.NumLEDs {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pixels[index] = c
}

// Flush draws the buffered LEDs
func (s *Screen) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.pixels {
		x, y := ledmatrix.ToCoord(i)
		style := tcell.StyleDefault.Foreground(Lift(c)).Background(tcell.ColorBlack)
		for dx := 0; dx < cellWidth; dx++ {
			s.screen.SetContent(x*cellWidth+dx, y, '█', nil, style)
		}
	}
	for i, r := range help {
		s.screen.SetContent(i, ledmatrix.Rows+1, r, nil, tcell.StyleDefault)
	}
	s.screen.Show()
	return nil
}

// Close restores the terminal
func (s *Screen) Close() error {
	s.screen.Fini()
	return nil
}

// Lift maps a pixel driven under the safety ceiling to a terminal color
// bright enough to see, keeping its hue
func Lift(c color.RGBA) tcell.Color {
	r, g, b := LiftRGB(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// LiftRGB scales a pixel so the safety ceiling maps to full brightness
func LiftRGB(c color.RGBA) (r, g, b uint8) {
	if c.R|c.G|c.B == 0 {
		return 0, 0, 0
	}
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	h, sat, v := col.Hsv()
	return colorful.Hsv(h, sat, math.Min(1, v/ledmatrix.MaxBrightness)).Clamped().RGB255()
}
