package middleware

import (
	"context"
	"net/http"

	"github.com/frahmantamala/employee-records/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses an inbound X-Request-ID or mints one, and attaches it to the
// response, the chi request id slot and the request scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "request_id", requestID)
		ctx = context.WithValue(ctx, chiMiddleware.RequestIDKey, requestID)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromRequest(r *http.Request) string {
	return chiMiddleware.GetReqID(r.Context())
}
