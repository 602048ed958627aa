package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

type PolicyHandler struct {
	reads  ports.DashboardService
	writes ports.RecordService
	idem   *Idempotency
}

func NewPolicyHandler(reads ports.DashboardService, writes ports.RecordService, idem *Idempotency) *PolicyHandler {
	return &PolicyHandler{reads: reads, writes: writes, idem: idem}
}

// List handles GET /v1/policies.
//
// @Summary      List visible policies
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Matches policy number, customer name or type"
// @Param        filter  query     string  false  "Status or type, or \"all\""
// @Success      200     {object}  listResponse[domain.Policy]
// @Failure      401     {object}  errorResponse
// @Router       /v1/policies [get]
func (h *PolicyHandler) List(c echo.Context) error {
	policies, err := h.reads.ListPolicies(c.Request().Context(), queryOf(c.QueryParam("search"), c.QueryParam("filter")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(policies))
}

// Create handles POST /v1/policies. Id, policy number and createdAt are
// generated when omitted.
//
// @Summary      Create a policy
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string         false  "Replays return the original id"
// @Param        body             body      domain.Policy  true   "Policy"
// @Success      201              {object}  domain.Policy
// @Success      200              {object}  replayResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/policies [post]
func (h *PolicyHandler) Create(c echo.Context) error {
	var req domain.Policy
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.idem.create(c, "policies", func() (string, any, error) {
		p, err := h.writes.CreatePolicy(c.Request().Context(), req)
		if err != nil {
			return "", nil, err
		}
		return p.ID, p, nil
	})
}

// Update handles PUT /v1/policies/:id.
//
// @Summary      Update a policy
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Policy id"
// @Param        body  body      domain.Policy  true  "Policy"
// @Success      200   {object}  domain.Policy
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/policies/{id} [put]
func (h *PolicyHandler) Update(c echo.Context) error {
	var req domain.Policy
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.ID = c.Param("id")

	p, err := h.writes.UpdatePolicy(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
