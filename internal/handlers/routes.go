package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all API routes. Every route registered here sits
// behind the rate limit middleware installed on the API.
func RegisterRoutes(api huma.API, greeting *GreetingHandler, statsHandler *StatsHandler, health *HealthHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Greeting",
		Description: "Demo endpoint protected by the per-client rate limiter.",
		Tags:        []string{"Demo"},
	}, greeting.Greet)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/ratelimit/stats",
		Summary:     "Limiter statistics",
		Description: "Allow/deny counters per client key since startup.",
		Tags:        []string{"RateLimit"},
	}, statsHandler.Snapshot)

	huma.Get(api, "/health", health.Check)
}
