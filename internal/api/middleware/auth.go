package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

// Context keys set by Auth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// TokenParser validates a bearer token.
type TokenParser interface {
	ParseToken(token string) (*ports.TokenClaims, error)
}

// SessionReader exposes the current session.
type SessionReader interface {
	Current() domain.Session
}

// Auth validates the JWT and requires its subject to still hold the session,
// so a logout invalidates every token issued before it.
func Auth(tokens TokenParser, sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.ParseToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			s := sessions.Current()
			if !s.IsAuthenticated || s.User == nil || s.User.ID != claims.UserID {
				return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, string(s.User.Role))
			c.Set(CtxEmail, claims.Email)

			return next(c)
		}
	}
}
