package auth

import (
	"net/http"
	"strings"
	"time"
)

const SessionCookieName = "auth-token"

// SessionCarrier moves session tokens in and out of the auth-token cookie.
type SessionCarrier struct {
	forceSecure bool
	now         func() time.Time
}

// NewSessionCarrier builds a carrier. When forceSecure is false the Secure
// flag is set only for requests that arrived over TLS, directly or through a
// proxy that reports X-Forwarded-Proto.
func NewSessionCarrier(forceSecure bool) *SessionCarrier {
	return &SessionCarrier{forceSecure: forceSecure, now: time.Now}
}

// Attach sets the cookie so that the browser drops it when the token expires.
func (c *SessionCarrier) Attach(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(c.now()) / time.Second)
	if maxAge <= 0 {
		maxAge = -1
	}

	cookie := c.cookie(r, token, maxAge)
	cookie.Expires = expiresAt.UTC()
	http.SetCookie(w, cookie)
}

// Extract returns the raw session token, or false when the cookie is missing,
// empty or could not be parsed.
func (c *SessionCarrier) Extract(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}

	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}

	return value, true
}

// Clear tells the client to drop the cookie. The token itself stays valid
// until it expires.
func (c *SessionCarrier) Clear(w http.ResponseWriter, r *http.Request) {
	cookie := c.cookie(r, "", -1)
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
}

func (c *SessionCarrier) cookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.forceSecure || isEncrypted(r),
		SameSite: http.SameSiteStrictMode,
	}
}

func isEncrypted(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}

	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
