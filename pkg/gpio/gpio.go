package gpio

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/warthog618/go-gpiocdev"
)

// Consumer is the label shown against requested lines in gpioinfo
const Consumer = "badge-ripple"

// Config describes where the button is wired
type Config struct {
	Chip string
	Line int
	// FallbackChip is tried when Chip cannot be opened, e.g. gpiochip4 on a Pi 5
	FallbackChip string
	PullUp       bool
	ActiveLow    bool
}

// line is the part of a gpiocdev.Line the button uses
type line interface {
	Value() (int, error)
	Close() error
}

// Button is a push button on a GPIO input line
type Button struct {
	line      line
	number    int
	activeLow bool
	mu        sync.Mutex
}

// NewButton requests the button's line as an input
func NewButton(cfg Config) (*Button, error) {
	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.WithConsumer(Consumer),
	}
	if cfg.PullUp {
		opts = append(opts, gpiocdev.WithPullUp)
	}

	log.Printf("Requesting GPIO line %d on %s", cfg.Line, cfg.Chip)
	l, err := gpiocdev.RequestLine(cfg.Chip, cfg.Line, opts...)
	if err != nil {
		if cfg.FallbackChip == "" {
			return nil, fmt.Errorf("failed to request line %d on %s: %w", cfg.Line, cfg.Chip, err)
		}
		log.Printf("Failed to request line: %v", err)
		log.Printf("Trying with %s...", cfg.FallbackChip)
		l, err = gpiocdev.RequestLine(cfg.FallbackChip, cfg.Line, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to request line %d on %s: %w", cfg.Line, cfg.FallbackChip, err)
		}
	}

	return newButton(l, cfg.Line, cfg.ActiveLow), nil
}

func newButton(l line, number int, activeLow bool) *Button {
	return &Button{
		line:      l,
		number:    number,
		activeLow: activeLow,
	}
}

// Pressed reads the line. With a pull-up wired button the line reads 0
// while held, so ActiveLow must be set.
func (b *Button) Pressed() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, err := b.line.Value()
	if err != nil {
		return false, fmt.Errorf("failed to read GPIO line %d: %w", b.number, err)
	}
	if b.activeLow {
		return v == 0, nil
	}
	return v == 1, nil
}

// Close releases the line
func (b *Button) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	log.Printf("Closing GPIO line %d", b.number)
	return b.line.Close()
}
