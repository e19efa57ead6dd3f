package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type actorKey struct{}

// WithActor stores the authenticated principal name in the context.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey{}, name)
}

// ActorFromContext extracts the authenticated principal name from the
// context. Empty string means anonymous.
func ActorFromContext(ctx context.Context) string {
	name, _ := ctx.Value(actorKey{}).(string)
	return name
}

// UserProvisioner registers a user on first authenticated request, which
// is what makes the user's personal workspace "personal".
type UserProvisioner interface {
	EnsureUser(ctx context.Context, name string) error
}

// Auth returns middleware that resolves the request actor. Requests
// without an Authorization header pass through anonymously; a Bearer
// token is validated and its principal name stored in the context, with
// the user row JIT-provisioned. An invalid token is rejected with 401,
// not downgraded to anonymous.
func Auth(validator JWTValidator, users UserProvisioner, nameClaim string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeUnauthorized(w, "Authorization header must be a Bearer token")
				return
			}

			claims, err := validator.Validate(r.Context(), tokenStr)
			if err != nil {
				logger.Debug("token rejected", "error", err)
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			actor := claims.Name(nameClaim)
			if err := users.EnsureUser(r.Context(), actor); err != nil {
				logger.Error("user provisioning failed", "actor", actor, "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}
