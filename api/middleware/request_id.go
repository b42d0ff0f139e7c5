package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/trovekart/storefront-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request ID to the context and echoes it back in the
// response header. Inbound IDs are only honored when they parse as a UUID so
// callers cannot inject arbitrary text into the logs.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(reqID); err != nil {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
