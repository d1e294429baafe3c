package middlewares

import (
	"assistant-service/internal/pkg/exceptions"
	"assistant-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// InboundRateLimit limits each client IP to App.MaxRequests per second and
// answers excess requests with the JSON error envelope. A non-positive limit
// disables it.
func (m *Middlewares) InboundRateLimit() func(next http.Handler) http.Handler {
	if m.InternalConfig.App.MaxRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(r.RemoteAddr))
		}),
	)
}
