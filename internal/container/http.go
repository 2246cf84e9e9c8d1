package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/rategate/internal/events"
	"github.com/serroba/rategate/internal/handlers"
	"github.com/serroba/rategate/internal/messaging"
	"github.com/serroba/rategate/internal/middleware"
	"github.com/serroba/rategate/internal/ratelimit"
	"github.com/serroba/rategate/internal/stats"
	"go.uber.org/zap"
)

const requestIDLength = 21

// HTTPPackage provides the router and the API with the middleware chain and
// all routes registered. Invoking huma.API builds the whole HTTP surface.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		api := humachi.New(router, huma.DefaultConfig("Rate Gate", "1.0.0"))

		newID, err := nanoid.Standard(requestIDLength)
		if err != nil {
			return nil, err
		}

		logger := do.MustInvoke[*zap.Logger](i)
		limiter := do.MustInvoke[ratelimit.Limiter](i)
		recorder := do.MustInvoke[stats.Store](i)
		emit := do.MustInvoke[messaging.Emit[events.LimitExceededEvent]](i)

		api.UseMiddleware(
			middleware.RequestMeta(api, newID),
			middleware.RateLimiter(api, limiter, recorder, emit, logger),
		)

		handlers.RegisterRoutes(api,
			handlers.NewGreetingHandler(),
			handlers.NewStatsHandler(recorder),
			handlers.NewHealthHandler(handlers.NewRedisHealthChecker(do.MustInvoke[*redis.Client](i))),
		)

		return api, nil
	})
}
