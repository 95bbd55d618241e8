package middleware

import (
	"context"
	"net/http"
	"strings"

	"chirpnet/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// IdentityKey is the context key for the caller's identity
	IdentityKey contextKey = "identity"
)

// Identity creates a middleware that derives the caller's identity from
// the session token. It never rejects: requests without a valid token
// carry an unauthenticated identity and the services decide what that
// caller may do. Checks Authorization header first, then falls back to
// an access_token cookie.
func Identity(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				cookie, err := r.Cookie("access_token")
				if err == nil && cookie.Value != "" {
					tokenString = cookie.Value
				}
			}

			identity := auth.Identity{}
			if tokenString != "" {
				if id, err := tokens.Verify(tokenString); err == nil {
					identity = id
				}
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the caller's identity. Requests that
// never passed through the Identity middleware read as unauthenticated.
func IdentityFromContext(ctx context.Context) auth.Identity {
	if id, ok := ctx.Value(IdentityKey).(auth.Identity); ok {
		return id
	}
	return auth.Identity{}
}
