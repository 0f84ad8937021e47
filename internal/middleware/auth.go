package middleware

import (
	"net/http"
	"strings"

	"openpilotlog/nightlog/internal/auth"
	"openpilotlog/nightlog/internal/logging"
)

// AdminAuthMiddleware requires a valid admin bearer token
func AdminAuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logging.Warn("Rejected admin token",
					"request_id", auth.GetRequestID(r.Context()),
					"error", err,
				)
				http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetAdminClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
