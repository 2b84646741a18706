package handlers

import (
	"net/http"
	"time"
)

// Имена cookie сессии
const (
	CookieAccessToken  = "access-token"
	CookieAuthToken    = "auth-token"
	CookieRefreshToken = "refresh-token"
)

// CookiePolicy задает атрибуты cookie сессии
type CookiePolicy struct {
	Secure bool // production: Secure и SameSite=None
}

func (p CookiePolicy) cookie(name, value string, expires time.Time, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if p.Secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: sameSite,
	}
}

// set выставляет cookie, живущую до expires
func (p CookiePolicy) set(w http.ResponseWriter, name, value string, expires, now time.Time) {
	http.SetCookie(w, p.cookie(name, value, expires, int(expires.Sub(now).Seconds())))
}

// clear удаляет все cookie сессии
func (p CookiePolicy) clear(w http.ResponseWriter) {
	for _, name := range []string{CookieAccessToken, CookieAuthToken, CookieRefreshToken} {
		http.SetCookie(w, p.cookie(name, "", time.Unix(0, 0), -1))
	}
}
