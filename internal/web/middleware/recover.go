package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/platform/logger"
	"github.com/taskdeck/taskdeck/internal/web"
)

// Recoverer converts a handler panic into the dedicated 500 page instead of
// a dropped connection. A single request's failure must never take the
// process down.
func Recoverer(renderer *web.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log := logger.FromContext(r.Context())
					log.Error("handler panicked",
						slog.Any("panic", p),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path))
					renderer.RenderServerError(w, r)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
