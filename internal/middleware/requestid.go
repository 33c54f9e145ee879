package middleware

import (
	"context"
	"net/http"

	"metagift-api/pkg/uid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID tags every request with an id for log correlation. An inbound
// X-Request-ID is honored so the mini-app frontend can thread its own ids
// through; otherwise a fresh uuid is issued. The id is echoed back in the
// response header and carried in the request context for the logging
// middleware.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uid.New()
		}

		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// GetRequestID returns the id stored by RequestID, or "" outside it.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
