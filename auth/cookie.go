package auth

import (
	"net/http"
	"time"

	"github.com/user/devlearn-go/config"
)

// CookieName is the name of the session cookie holding the signed token.
const CookieName = "token"

// SessionCookie builds the HTTP-only session cookie for a freshly issued
// token. In production the cookie is Secure with SameSite=None so the
// browser sends it on cross-site requests from the frontend; in development
// the attributes are relaxed for plain-HTTP localhost.
func SessionCookie(cfg *config.AuthConfig, token string, expiresAt time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  expiresAt,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.IsProduction() {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

// ClearedSessionCookie builds a cookie that removes the session cookie from
// the client. MaxAge -1 deletes it outright rather than merely expiring it.
func ClearedSessionCookie(cfg *config.AuthConfig) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.IsProduction() {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
