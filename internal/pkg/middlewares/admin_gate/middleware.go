package admin_gate

import (
	"crypto/subtle"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"lionhearts/internal/handlers/rest/respond"
	"lionhearts/internal/pkg/middlewares/request_id"
	"lionhearts/pkg/logger"
)

const (
	Header     = "X-Admin-Code"
	QueryParam = "code"
)

var AdminAuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "admin_auth_failures_total",
		Help: "Total number of admin requests rejected for a missing or wrong code",
	},
)

// Middleware admits a request only if it carries the shared admin code in the
// X-Admin-Code header or, failing that, the code query parameter.
func Middleware(log handlerLogger, adminCode string) func(http.Handler) http.Handler {
	expected := []byte(adminCode)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authorized(r, expected) {
				AdminAuthFailuresTotal.Inc()
				log.Warn("admin request rejected",
					logger.NewField("path", r.URL.Path),
					logger.NewField("remote_addr", r.RemoteAddr),
					logger.NewField("request_id", request_id.FromContext(r.Context())),
				)

				err := respond.Error(w, http.StatusUnauthorized, respond.MsgUnauthorized)
				if err != nil {
					log.Error("encode JSON response", logger.NewField("error", err))
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func authorized(r *http.Request, expected []byte) bool {
	if len(expected) == 0 {
		return false
	}

	provided := r.Header.Get(Header)
	if provided == "" {
		provided = r.URL.Query().Get(QueryParam)
	}
	return subtle.ConstantTimeCompare([]byte(provided), expected) == 1
}
