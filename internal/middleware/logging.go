// internal/middleware/logging.go
package middleware

import (
	"log"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request with its status, duration and
// caller. Place it after ClientInfoMiddleware.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := "INFO"
		if status >= http.StatusInternalServerError {
			level = "ERROR"
		}

		info := GetClientInfoFromContext(r.Context())
		log.Printf("[%s] %s %s %d completed in %v (user: %d, ip: %s, req: %s)",
			level, r.Method, r.URL.Path, status, time.Since(start), info.UserID, info.IPAddress, info.RequestID)
	})
}
