package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// flashCookieName carries pending flash messages across one redirect.
const flashCookieName = "taskdeck_flash"

// FlashLevel is the severity of a flash message.
type FlashLevel string

// Possible flash levels
const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash is a transient status message shown once on the next page view and
// then discarded.
type Flash struct {
	Message string     `json:"message"`
	Level   FlashLevel `json:"level"`
}

// SetFlashes stores the given messages in the flash cookie so the next
// rendered page can show them. An empty slice clears the cookie.
func SetFlashes(w http.ResponseWriter, flashes ...Flash) {
	if len(flashes) == 0 {
		clearFlashCookie(w)
		return
	}

	payload, err := json.Marshal(flashes)
	if err != nil {
		// Flashes are plain strings; marshalling them cannot realistically
		// fail, and a lost status message is not worth failing the request.
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes reads the pending flash messages and clears the cookie, so each
// message is delivered exactly once.
func PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	clearFlashCookie(w)

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}

func clearFlashCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
