package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id RequestLogger assigns to each request.
const RequestIDHeader = "X-Request-Id"

// RequestLogger logs one line per request with its status and original path.
// Anything other than 200 is logged at warn level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			if status != http.StatusOK {
				level = slog.LevelWarn
			}

			slog.Log(r.Context(), level, "request",
				"status", status,
				"path", originalPath(r),
				"method", r.Method,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"id", id,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
