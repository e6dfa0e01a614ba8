package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"

	"lionhearts/internal/handlers/rest/respond"
)

const MsgShuttingDown = "Service is shutting down."

// Middleware turns away new requests once shutdown has started and the
// ongoing context is gone; in-flight requests are left to finish.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() && ongoingCtx.Err() != nil {
				w.Header().Set("Connection", "close")
				_ = respond.Error(w, http.StatusServiceUnavailable, MsgShuttingDown)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
