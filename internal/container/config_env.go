package container

import (
	"os"
	"strconv"
	"time"

	"github.com/serroba/rategate/internal/ratelimit"
)

// Environment surface of the limiter. The core never reads these itself; it
// only receives the already-validated Config built here.
const (
	EnvMaxRequests   = "RATE_LIMIT_MAX_REQUESTS"
	EnvWindowSeconds = "RATE_LIMIT_WINDOW_SECONDS"
	EnvLimiterType   = "RATE_LIMITER_TYPE"
)

// LimiterConfigFromEnv builds the limiter Config from the environment.
// Missing, non-numeric or non-positive values silently fall back to the
// defaults; construction never fails.
func LimiterConfigFromEnv() ratelimit.Config {
	maxRequests := envPositiveInt(EnvMaxRequests, ratelimit.DefaultMaxRequests)
	windowSeconds := envPositiveInt(EnvWindowSeconds, int(ratelimit.DefaultWindow/time.Second))
	strategy := ratelimit.ParseStrategy(os.Getenv(EnvLimiterType))

	return ratelimit.NewConfig(maxRequests, time.Duration(windowSeconds)*time.Second, strategy)
}

func envPositiveInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
