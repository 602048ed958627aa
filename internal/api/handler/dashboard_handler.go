package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Get returns the session user's dashboard.
//
// @Summary      Role dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Free-text search"
// @Param        filter  query     string  false  "Status, type or role selector; \"all\" disables it"
// @Success      200     {object}  ports.Dashboard
// @Failure      401     {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	d, err := h.dashboards.Dashboard(c.Request().Context(), queryOf(c.QueryParam("search"), c.QueryParam("filter")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
