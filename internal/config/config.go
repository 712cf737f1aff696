package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fcurrie/badge-ripple/internal/controller"
	"github.com/fcurrie/badge-ripple/internal/ripple"
	"github.com/fcurrie/badge-ripple/internal/snapshot"
	"github.com/fcurrie/badge-ripple/pkg/gpio"
	"github.com/fcurrie/badge-ripple/pkg/ledmatrix"
	"github.com/fcurrie/badge-ripple/pkg/ws281x"
)

const (
	// EnvPath names the environment variable holding the config file path
	EnvPath = "BADGE_RIPPLE_CONFIG"
	// DefaultPath is read from the working directory when present
	DefaultPath = "ripple.json"
)

// Output devices
const (
	OutputWS281x   = "ws281x"
	OutputTerminal = "terminal"
	OutputSnapshot = "snapshot"
)

// Config represents the application configuration
type Config struct {
	Output   string                  `json:"output"`
	LogLevel string                  `json:"log_level"`
	Effect   string                  `json:"effect"`
	Strip    StripConfig             `json:"strip"`
	Button   ButtonConfig            `json:"button"`
	Effects  map[string]EffectConfig `json:"effects"`
	Snapshot SnapshotConfig          `json:"snapshot"`
}

// StripConfig represents the configuration for the LED strip
type StripConfig struct {
	GPIOPin    int    `json:"gpio_pin"`
	Brightness int    `json:"brightness"`
	StripType  string `json:"strip_type"`
}

// ButtonConfig represents the configuration for the trigger button
type ButtonConfig struct {
	Chip         string `json:"chip"`
	Line         int    `json:"line"`
	FallbackChip string `json:"fallback_chip"`
	PullUp       bool   `json:"pull_up"`
	ActiveLow    bool   `json:"active_low"`
	DebounceMs   int    `json:"debounce_ms"`
	PollMs       int    `json:"poll_ms"`
}

// EffectConfig overrides an effect's tunables. Zero values keep the default.
type EffectConfig struct {
	DurationMs      int     `json:"duration_ms"`
	FrameIntervalMs int     `json:"frame_interval_ms"`
	Speed           float64 `json:"speed"`
	Envelope        float64 `json:"envelope"`
}

// SnapshotConfig represents the configuration for the picture recorder
type SnapshotConfig struct {
	Dir   string `json:"dir"`
	Scale int    `json:"scale"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output:   OutputWS281x,
		LogLevel: "info",
		Effect:   ripple.RainbowName,
		Strip: StripConfig{
			GPIOPin:    ws281x.DefaultPin,
			Brightness: ws281x.DefaultBrightness,
			StripType:  "grb",
		},
		Button: ButtonConfig{
			Chip:         "gpiochip0",
			Line:         6,
			FallbackChip: "gpiochip4",
			PullUp:       true,
			ActiveLow:    true,
			DebounceMs:   int(controller.DefaultDebounce / time.Millisecond),
			PollMs:       int(controller.DefaultPoll / time.Millisecond),
		},
		Effects: map[string]EffectConfig{},
		Snapshot: SnapshotConfig{
			Dir:   "frames",
			Scale: snapshot.DefaultScale,
		},
	}
}

// LoadConfig loads the configuration from a file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Load finds the configuration without command line flags: the file named
// by $BADGE_RIPPLE_CONFIG, else ripple.json if it exists, else the defaults.
// It returns where the configuration came from.
func Load() (*Config, string, error) {
	if path := os.Getenv(EnvPath); path != "" {
		cfg, err := LoadConfig(path)
		return cfg, path, err
	}

	cfg, err := LoadConfig(DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), "defaults", nil
	}
	return cfg, DefaultPath, err
}

// Validate checks the configuration
func (c *Config) Validate() error {
	switch c.Output {
	case OutputWS281x, OutputTerminal, OutputSnapshot:
	default:
		return fmt.Errorf("unknown output %q", c.Output)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := ripple.Lookup(c.Effect, ripple.DefaultRainbow); err != nil {
		return err
	}
	for name, e := range c.Effects {
		if _, ok := ripple.Defaults()[name]; !ok {
			return fmt.Errorf("settings for unknown effect %q", name)
		}
		if e.DurationMs < 0 || e.FrameIntervalMs < 0 || e.Speed < 0 || e.Envelope < 0 {
			return fmt.Errorf("effect %q settings must not be negative", name)
		}
	}
	if c.Button.DebounceMs < 0 || c.Button.PollMs < 0 {
		return fmt.Errorf("button timings must not be negative")
	}
	strip := c.WS281x()
	return strip.Validate()
}

// Level returns the parsed log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// EffectParams returns the named effect's defaults with any overrides applied
func (c *Config) EffectParams(name string) (ripple.Params, error) {
	p, ok := ripple.Defaults()[name]
	if !ok {
		return ripple.Params{}, fmt.Errorf("unknown effect %q", name)
	}

	o := c.Effects[name]
	if o.DurationMs > 0 {
		p.Duration = time.Duration(o.DurationMs) * time.Millisecond
	}
	if o.FrameIntervalMs > 0 {
		p.FrameInterval = time.Duration(o.FrameIntervalMs) * time.Millisecond
	}
	if o.Speed > 0 {
		p.Speed = o.Speed
	}
	if o.Envelope > 0 {
		p.Envelope = o.Envelope
	}
	return p, nil
}

// NewEffect builds the configured effect
func (c *Config) NewEffect() (*ripple.Effect, error) {
	p, err := c.EffectParams(c.Effect)
	if err != nil {
		return nil, err
	}
	return ripple.Lookup(c.Effect, p)
}

// Controller returns the controller timing
func (c *Config) Controller() controller.Config {
	return controller.Config{
		Debounce: time.Duration(c.Button.DebounceMs) * time.Millisecond,
		Poll:     time.Duration(c.Button.PollMs) * time.Millisecond,
	}
}

// GPIO returns the button wiring
func (c *Config) GPIO() gpio.Config {
	return gpio.Config{
		Chip:         c.Button.Chip,
		Line:         c.Button.Line,
		FallbackChip: c.Button.FallbackChip,
		PullUp:       c.Button.PullUp,
		ActiveLow:    c.Button.ActiveLow,
	}
}

// WS281x returns the strip wiring
func (c *Config) WS281x() ws281x.Config {
	return ws281x.Config{
		GPIOPin:    c.Strip.GPIOPin,
		LedCount:   ledmatrix.NumLEDs,
		Brightness: c.Strip.Brightness,
		StripType:  c.Strip.StripType,
	}
}

// Recorder returns the snapshot settings
func (c *Config) Recorder() snapshot.Config {
	return snapshot.Config{Dir: c.Snapshot.Dir, Scale: c.Snapshot.Scale}
}
