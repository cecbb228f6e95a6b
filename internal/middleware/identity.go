package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKeyUserID struct{}

// Identity lifts the already-authenticated caller identity off the request
// into the context. Authentication itself happens upstream; this layer
// only transports the result.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyUserID{}, userID))
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFrom returns the caller identity, or "" when none was supplied.
func UserIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKeyUserID{}).(string); ok {
		return v
	}
	return ""
}
