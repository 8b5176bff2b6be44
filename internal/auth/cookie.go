package auth

import (
	"net/http"
	"time"
)

// sessionCookie builds the carrier cookie from the shared auth config.
// Set and clear both go through here so their attributes stay identical;
// a mismatch would make clearing silently fail in some browsers.
func (i *Issuer) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     i.cfg.CookieName,
		Value:    value,
		Path:     i.cfg.CookiePath,
		HttpOnly: true,
		Secure:   i.cfg.CookieSecure,
		SameSite: i.cfg.CookieSameSite,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
	} else {
		c.MaxAge = -1
	}
	return c
}

// SetSessionCookie attaches a freshly issued token to the response.
func (i *Issuer) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, i.sessionCookie(token, i.ttl))
}

// ClearSessionCookie expires the session cookie on the client.
func (i *Issuer) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, i.sessionCookie("", -1))
}

// CookieName exposes the configured cookie name for request-side extraction.
func (i *Issuer) CookieName() string {
	return i.cfg.CookieName
}
