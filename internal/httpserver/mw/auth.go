package mw

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/auth"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
)

// Authenticator verifies a bearer token and resolves the caller identity.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (auth.Identity, error)
}

// Authenticate rejects requests without a valid bearer token and stores
// the resolved identity on the request context for downstream handlers.
func Authenticate(svc Authenticator, loggerClient logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			id, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				loggerClient.Debug("rejected token",
					logger.String("path", r.URL.Path),
					logger.Error(err))
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// BearerToken extracts the token from an Authorization header, or ""
// when the header is absent or not a bearer scheme.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
