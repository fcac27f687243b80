package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/imishinist/logger-dev/internal/logging"
)

const requestIDHeader = "X-Request-Id"

const maxRequestIDLength = 128

// requestIDMiddleware keeps a sane inbound X-Request-Id or mints a new one,
// echoes it on the response and stores it on the request context.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
