package ratelimit

import "time"

// Clock supplies the current time. Abstracted so tests can inject
// synthetic time instead of sleeping through real windows.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
