package controller

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

const sessionCookieName = "laundry_session"

// sessionID returns the caller's session identifier, setting a new
// cookie on first contact
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read failing means the platform's entropy source is broken;
		// fall back to a shared session rather than crash
		return "default"
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}
