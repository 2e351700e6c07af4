package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const UserContextKey contextKey = "user"

// DemoUser puts a fixed user id into the request context. There are no
// credentials to check; every request acts as that user.
func DemoUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), UserContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the acting user id from the request context
func GetUserIDFromContext(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserContextKey).(string)
	return userID, ok && userID != ""
}
