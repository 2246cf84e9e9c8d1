package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/rategate/internal/events"
	"github.com/serroba/rategate/internal/messaging"
	"github.com/serroba/rategate/internal/ratelimit"
	"github.com/serroba/rategate/internal/stats"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware gating every request on the
// per-client limiter. Denied requests get a 429 with a Retry-After header.
// Stats recording and event publishing are best-effort: their failures are
// logged and never block or fail the request.
func RateLimiter(
	api huma.API,
	limiter ratelimit.Limiter,
	recorder stats.Store,
	emit messaging.Emit[events.LimitExceededEvent],
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := clientIP(ctx)
		path := requestPath(ctx)

		decision := limiter.Allow(ctx.Context(), key)
		now := time.Now()

		if err := recorder.Record(ctx.Context(), stats.Event{
			Key:      key,
			ClientIP: key,
			Path:     path,
			Allowed:  decision.Allowed,
			At:       now,
		}); err != nil {
			logger.Warn("failed to record rate limit stats", zap.Error(err))
		}

		if !decision.Allowed {
			logger.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.String("method", ctx.Method()),
				zap.Duration("retryAfter", decision.RetryAfter),
			)

			if emit != nil {
				event := events.NewLimitExceeded(key, key, path, decision.RetryAfter, now)
				if err := emit(event); err != nil {
					logger.Warn("failed to publish limit exceeded event", zap.Error(err))
				}
			}

			ctx.SetHeader("Retry-After", strconv.FormatInt(retryAfterSeconds(decision.RetryAfter), 10))
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests,
				fmt.Sprintf("rate limit exceeded, retry in %s", decision.RetryAfter.Round(time.Second)))

			return
		}

		next(ctx)
	}
}

// retryAfterSeconds rounds up so clients never retry early.
func retryAfterSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}

	secs := int64((d + time.Second - 1) / time.Second)

	return secs
}

// requestPath prefers the operation's route template over the raw URL, so
// deny logs group by route.
func requestPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil && op.Path != "" {
		return op.Path
	}

	u := ctx.URL()

	return u.Path
}
