package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/expense-api/internal/token"
)

type key string

const userIDKey key = "user_id"

// GetUserID returns the authenticated user id injected by RequireAuth.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID returns a context carrying userID. Exposed for handler tests.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequireAuth guards protected routes. It extracts the Bearer token, verifies
// it, and injects the resolved user id into the request context. Each failure
// kind keeps its own status and message; clients rely on the 401/422 split.
func RequireAuth(svc *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			userID, err := svc.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				switch {
				case errors.Is(err, token.ErrMissing):
					writeAuthError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				case errors.Is(err, token.ErrExpired):
					writeAuthError(w, http.StatusUnauthorized, "Token has expired")
				case errors.Is(err, token.ErrVerification):
					writeAuthError(w, http.StatusUnprocessableEntity, "Token verification failed")
				default:
					writeAuthError(w, http.StatusUnprocessableEntity, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
