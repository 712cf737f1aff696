package main

import (
	"flag"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/fcurrie/badge-ripple/internal/config"
	"github.com/fcurrie/badge-ripple/internal/controller"
	"github.com/fcurrie/badge-ripple/pkg/gpio"
)

func main() {
	defaults := config.DefaultConfig()
	chip := flag.String("chip", defaults.Button.Chip, "GPIO chip of the button")
	line := flag.Int("line", defaults.Button.Line, "GPIO line of the button")
	fallback := flag.String("fallback", defaults.Button.FallbackChip, "chip to try when the first one fails")
	pullUp := flag.Bool("pull-up", defaults.Button.PullUp, "enable the internal pull-up")
	activeLow := flag.Bool("active-low", defaults.Button.ActiveLow, "treat a low line as pressed")
	debounce := flag.Duration("debounce", controller.DefaultDebounce, "minimum time between presses")
	poll := flag.Duration("poll", controller.DefaultPoll, "button poll interval")
	flag.Parse()

	// Set up signal handler for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGTERM)

	log.Println("Starting GPIO test...")

	button, err := gpio.NewButton(gpio.Config{
		Chip:         *chip,
		Line:         *line,
		FallbackChip: *fallback,
		PullUp:       *pullUp,
		ActiveLow:    *activeLow,
	})
	if err != nil {
		log.Fatalf("Failed to open button: %v", err)
	}
	defer button.Close()

	log.Println("Successfully requested GPIO line, press the button")

	debouncer := controller.NewDebouncer(*debounce)
	ticker := time.NewTicker(*poll)
	defer ticker.Stop()

	presses, bounces := 0, 0
	wasPressed := false
	for {
		select {
		case <-sigChan:
			log.Printf("Shutting down after %d presses (%d ignored)", presses, bounces)
			return
		case now := <-ticker.C:
			pressed, err := button.Pressed()
			if err != nil {
				log.Printf("Failed to read button: %v", err)
				continue
			}
			if pressed && !wasPressed {
				if debouncer.Allow(now) {
					presses++
					log.Printf("Button pressed (%d)", presses)
				} else {
					bounces++
					log.Printf("Ignored bounce within %s of the last press", *debounce)
				}
			}
			if !pressed && wasPressed {
				log.Debug("Button released")
			}
			wasPressed = pressed
		}
	}
}
