package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// csrfCookieName holds the double-submit token. Deliberately not
	// HttpOnly: the browser client reads it and echoes it back in the
	// request header, which a cross-site page cannot do.
	csrfCookieName = "moodlog_csrf"

	// csrfHeaderName is where mutating requests must carry the token.
	// The API is JSON-only, so there is no form-field fallback.
	csrfHeaderName = "X-CSRF-Token"

	csrfTokenBytes = 32
)

// CSRF returns double-submit cookie protection for every mutating request.
// Safe methods pass through but still receive a token cookie if the client
// has none yet. POST, PUT, PATCH and DELETE must present a header token
// matching the cookie or the request is rejected with 403.
//
// Sessions ride in an HttpOnly cookie, so this API is a cross-site request
// target like any cookie-authenticated site.
func CSRF() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			token := ""
			if cookie, err := req.Cookie(csrfCookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				fresh, err := newCSRFToken()
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate CSRF token")
				}
				token = fresh
				c.SetCookie(&http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: false,
					Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set("csrf_token", token)

			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			// Constant-time compare so the token can't be probed byte by byte.
			sent := req.Header.Get(csrfHeaderName)
			if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or missing CSRF token")
			}
			return next(c)
		}
	}
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
