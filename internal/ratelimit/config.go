package ratelimit

import "time"

const (
	// DefaultMaxRequests is the per-client quota used when none is configured.
	DefaultMaxRequests = 10
	// DefaultWindow is the trailing window length used when none is configured.
	DefaultWindow = 60 * time.Second
)

// Strategy selects which WindowStore implementation backs the limiter.
type Strategy int

const (
	// StrategySharded partitions clients across independently locked shards.
	// Configured as "lock_free". This is the default.
	StrategySharded Strategy = iota
	// StrategyExact serializes all operations behind a single lock.
	// Configured as "standard".
	StrategyExact
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	if s == StrategyExact {
		return "standard"
	}

	return "lock_free"
}

// ParseStrategy maps a configuration value to a Strategy.
// Unrecognized values fall back to StrategySharded.
func ParseStrategy(name string) Strategy {
	if name == "standard" {
		return StrategyExact
	}

	return StrategySharded
}

// Config holds the limiter settings. It is built once at startup and never
// mutated; all store operations share it by value.
type Config struct {
	MaxRequests int
	Window      time.Duration
	Strategy    Strategy
}

// NewConfig builds a Config, substituting defaults for non-positive values
// rather than failing.
func NewConfig(maxRequests int, window time.Duration, strategy Strategy) Config {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}

	if window <= 0 {
		window = DefaultWindow
	}

	return Config{
		MaxRequests: maxRequests,
		Window:      window,
		Strategy:    strategy,
	}
}

// DefaultConfig returns the documented defaults: 10 requests per 60 seconds,
// sharded strategy.
func DefaultConfig() Config {
	return NewConfig(DefaultMaxRequests, DefaultWindow, StrategySharded)
}
