package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/api/middleware"
	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// ctxUser returns the identity the Auth middleware attached. A missing id
// means the route was mounted without the middleware.
func ctxUser(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	r, _ := c.Get(middleware.CtxRole).(string)
	return userID, domain.Role(r), nil
}
