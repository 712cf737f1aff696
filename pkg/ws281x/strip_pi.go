//go:build pi

package ws281x

import (
	"fmt"
	"image/color"
	"sync"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"
	log "github.com/sirupsen/logrus"
)

// Strip is a WS281x LED chain
type Strip struct {
	dev   *ws2811.WS2811
	count int
	mu    sync.Mutex
}

// New initialises the strip
func New(cfg Config) (*Strip, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = cfg.GPIOPin
	opt.Channels[0].LedCount = cfg.LedCount
	opt.Channels[0].Brightness = cfg.Brightness
	opt.Channels[0].StripeType = ws2811.WS2811StripGRB
	if cfg.StripType == "rgb" {
		opt.Channels[0].StripeType = ws2811.WS2811StripRGB
	}

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create WS2811: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize WS2811: %w", err)
	}

	log.Printf("WS281x strip with %d LEDs on GPIO %d", cfg.LedCount, cfg.GPIOPin)
	return &Strip{dev: dev, count: cfg.LedCount}, nil
}

// SetPixel buffers the color of one LED
func (s *Strip) SetPixel(index int, c color.RGBA) {
	if index < 0 || index >= s.count {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dev.Leds(0)[index] = pack(c)
}

// Flush sends the buffered colors down the chain
func (s *Strip) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dev.Render(); err != nil {
		return fmt.Errorf("failed to render WS2811: %w", err)
	}
	return s.dev.Wait()
}

// Close releases the DMA channel and PWM
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dev.Fini()
	return nil
}
