package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

// TokenIssuer signs the token handed out on login.
type TokenIssuer interface {
	IssueToken(user *domain.User) (string, error)
}

type AuthHandler struct {
	sessions ports.SessionManager
	tokens   TokenIssuer
}

func NewAuthHandler(sessions ports.SessionManager, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens}
}

// Login runs a login attempt and returns a JWT bound to the new session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, domain.MsgMissingFields)
	}

	user, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := h.tokens.IssueToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: *user})
}

// Logout ends the session. Every token issued so far stops working.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Current()))
}
