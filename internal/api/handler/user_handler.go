package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

// UserHandler serves the user management screen. Bodies are domain.User
// documents; the store validates them.
type UserHandler struct {
	reads  ports.DashboardService
	writes ports.RecordService
	idem   *Idempotency
}

func NewUserHandler(reads ports.DashboardService, writes ports.RecordService, idem *Idempotency) *UserHandler {
	return &UserHandler{reads: reads, writes: writes, idem: idem}
}

// List handles GET /v1/users.
//
// @Summary      List visible users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Matches name or email"
// @Param        filter  query     string  false  "Role, or \"all\""
// @Success      200     {object}  listResponse[domain.User]
// @Failure      401     {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.reads.ListUsers(c.Request().Context(), queryOf(c.QueryParam("search"), c.QueryParam("filter")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(users))
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Replays return the original id"
// @Param        body             body      domain.User  true   "User"
// @Success      201              {object}  domain.User
// @Success      200              {object}  replayResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req domain.User
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.idem.create(c, "users", func() (string, any, error) {
		u, err := h.writes.CreateUser(c.Request().Context(), req)
		if err != nil {
			return "", nil, err
		}
		return u.ID, u, nil
	})
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User id"
// @Param        body  body      domain.User  true  "User"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req domain.User
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.ID = c.Param("id")

	u, err := h.writes.UpdateUser(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
