package http

import "time"

const (
	OpHealth       = "health"
	OpRestaurants  = "restaurants"
	OpAvailability = "availability"
	OpCreate       = "create"
	OpSearch       = "search"
	OpCancel       = "cancel"
	OpReschedule   = "reschedule"
)

// Latency holds an artificial delay per operation. A nil Latency never
// sleeps.
type Latency map[string]time.Duration

// Wait blocks for the delay configured for op. It is called after the
// operation has run and before the response is written.
func (l Latency) Wait(op string) {
	if d, ok := l[op]; ok && d > 0 {
		time.Sleep(d)
	}
}
