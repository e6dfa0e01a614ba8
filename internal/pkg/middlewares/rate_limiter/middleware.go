package rate_limiter

import (
	"net/http"
	"strconv"

	"lionhearts/internal/handlers/rest/respond"
	"lionhearts/internal/pkg/middlewares/metrics"
	"lionhearts/internal/pkg/middlewares/request_id"
	"lionhearts/pkg/logger"
)

const MsgTooManyRequests = "Too many requests. Please try again shortly."

// Middleware sheds load with 429 once the shared bucket is empty. limit is
// only advertised in X-RateLimit-Limit.
func Middleware(log handlerLogger, limit int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteTemplate(r)
			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			log.Warn("rate limit exceeded",
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
				logger.NewField("request_id", request_id.FromContext(r.Context())),
			)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("Retry-After", "1")
			err := respond.Error(w, http.StatusTooManyRequests, MsgTooManyRequests)
			if err != nil {
				log.Error("failed to write rate limit response", logger.NewField("error", err))
			}
		})
	}
}
