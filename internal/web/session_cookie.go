package web

import (
	"net/http"
	"time"
)

// sessionCookieName carries the signed session token.
const sessionCookieName = "taskdeck_session"

// SetSessionCookie attaches the signed session token to the response.
// The cookie is HttpOnly; the token inside is tamper-evident on its own, the
// cookie flags only keep scripts away from it.
func SetSessionCookie(w http.ResponseWriter, token string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie invalidates the session cookie immediately.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadSessionCookie returns the raw session token from the request, or an
// empty string when no session cookie is present.
func ReadSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
