package app

import "time"

// Options configures the viewer loop.
type Options struct {
	Scale int
	// Pause is how long each generation stays on screen.
	Pause time.Duration
	// Steps caps the number of generations shown; 0 means no cap.
	Steps int
	Seed  int64
}
