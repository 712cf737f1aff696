package animation

import "time"

// Scheduler paces a frame loop at a fixed rate.
// Ticks are anchored to the start time so render cost does not accumulate
// as drift; a loop that falls behind skips the sleep and re-anchors.
type Scheduler struct {
	clock    Clock
	interval time.Duration
	next     time.Time
}

// NewScheduler creates a scheduler whose first tick is due now
func NewScheduler(clock Clock, interval time.Duration) *Scheduler {
	return &Scheduler{
		clock:    clock,
		interval: interval,
		next:     clock.Now(),
	}
}

// Wait sleeps until the next tick is due
func (s *Scheduler) Wait() {
	s.next = s.next.Add(s.interval)

	now := s.clock.Now()
	if now.Before(s.next) {
		s.clock.Sleep(s.next.Sub(now))
		return
	}
	s.next = now
}
