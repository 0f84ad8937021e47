package middleware

import (
	"net/http"
	"time"

	"openpilotlog/nightlog/internal/auth"
	"openpilotlog/nightlog/internal/logging"
)

// Logging emits debug lines for each request and its outcome. Mounted only
// outside production.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.WithRequest(auth.GetRequestID(r.Context()), r.URL.Path)
		log.Debugw("→ request", "method", r.Method, "query", r.URL.RawQuery, "remote_addr", r.RemoteAddr)

		lw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(lw, r)

		log.Debugw("← response",
			"status_code", lw.statusCode,
			"status", http.StatusText(lw.statusCode),
			"duration", time.Since(start).String(),
		)
	})
}
