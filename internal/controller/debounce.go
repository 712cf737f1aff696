package controller

import "time"

// DefaultDebounce is the minimum time between two accepted presses
const DefaultDebounce = 300 * time.Millisecond

// Debouncer drops presses that follow an accepted one too closely
type Debouncer struct {
	delay time.Duration
	last  time.Time
	armed bool
}

// NewDebouncer creates a debouncer with the given minimum gap
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Allow reports whether a press at now should trigger.
// Accepted presses restart the window; ignored ones do not.
func (d *Debouncer) Allow(now time.Time) bool {
	if d.armed && now.Sub(d.last) <= d.delay {
		return false
	}
	d.last = now
	d.armed = true
	return true
}
