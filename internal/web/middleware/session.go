// Package middleware provides the session and tracing middleware for the
// web handlers.
package middleware

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/service/auth"
	"github.com/taskdeck/taskdeck/internal/web"
)

// SessionMiddleware validates the session cookie and gates the routes that
// require an authenticated user.
type SessionMiddleware struct {
	sessions auth.SessionService
}

// NewSessionMiddleware creates a SessionMiddleware backed by the given
// session service.
func NewSessionMiddleware(sessions auth.SessionService) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Load reads and validates the session cookie when present, storing the
// identity in the request context. An absent or untrusted cookie leaves the
// request unauthenticated; it never fails the request on its own.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := web.ReadSessionCookie(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.sessions.Validate(r.Context(), token)
		if err != nil {
			// Expired or tampered; drop the cookie so the client stops
			// sending it.
			web.ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(web.WithSession(r.Context(), claims)))
	})
}

// RequireSession redirects unauthenticated requests to the login page with
// the given message. The dashboard and the mutation routes word the prompt
// differently, so the message is the caller's. No data operation runs for a
// rejected request.
func (m *SessionMiddleware) RequireSession(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if web.SessionFromContext(r.Context()) == nil {
				web.SetFlashes(w, web.Flash{
					Message: message,
					Level:   web.FlashError,
				})
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
