package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/metrics"
)

// SessionCookieName is the cookie carrying the session token. The logout
// handler must clear the cookie with the exact attribute set used at
// issuance or browsers ignore the clear.
const SessionCookieName = "token"

// ContextKeyEmail is the echo context key under which the authenticated
// identity claim is stored after Auth succeeds. It is populated exactly once
// per request and only on a verified token; handlers read it through
// AuthenticatedEmail rather than ambient globals.
const ContextKeyEmail = "auth_email"

// Auth is the authentication guard. It extracts the session token, verifies
// it, and injects the identity claim into the request context. Every failure
// short-circuits with ErrUnauthenticated; no downstream guard or handler runs.
// touch, when non-nil, receives the verified email for an async last-seen
// update off the request path.
func Auth(sessions ports.SessionService, touch func(email string)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			email, err := sessions.Verify(token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrUnauthenticated
			}

			c.Set(ContextKeyEmail, email)
			if touch != nil {
				touch(email)
			}

			return next(c)
		}
	}
}

// extractToken reads the session cookie first (browsers), then falls back to
// an Authorization bearer header (API clients).
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// AuthenticatedEmail returns the identity claim injected by Auth. Presence
// proves the guard ran; an empty value means the route was wired without it.
func AuthenticatedEmail(c echo.Context) (string, error) {
	email, _ := c.Get(ContextKeyEmail).(string)
	if email == "" {
		return "", domain.ErrUnauthenticated
	}
	return email, nil
}
