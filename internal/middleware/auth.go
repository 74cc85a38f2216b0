package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/lumenframe/albums/internal/ctxkeys"
	"github.com/lumenframe/albums/internal/service"
)

// AuthMiddleware resolves an optional bearer token into the caller identity.
// No Authorization header leaves the request anonymous. A header that does
// not carry a valid token is rejected with 401 instead of silently
// downgrading the caller.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			caller, err := authService.VerifyJWT(strings.TrimSpace(token))
			if err != nil {
				slog.Debug("rejected bearer token",
					"error", err,
					"request_id", ctxkeys.RequestID(r.Context()),
				)
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := ctxkeys.WithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
