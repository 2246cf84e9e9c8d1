package store

import "time"

// pruneWindow returns the timestamps still inside the window ending at now.
// Ages are computed with now.Sub, so a now that is behind an entry (a
// non-monotonic clock reading) yields a negative age and never evicts an
// in-window entry. The returned slice has room for one appended timestamp.
func pruneWindow(timestamps []time.Time, now time.Time, window time.Duration) []time.Time {
	valid := make([]time.Time, 0, len(timestamps)+1)

	for _, ts := range timestamps {
		if now.Sub(ts) < window {
			valid = append(valid, ts)
		}
	}

	return valid
}

// retryAfter is how long until the oldest retained entry ages out of the
// window, clamped at zero.
func retryAfter(oldest, now time.Time, window time.Duration) time.Duration {
	wait := window - now.Sub(oldest)
	if wait < 0 {
		wait = 0
	}

	return wait
}
