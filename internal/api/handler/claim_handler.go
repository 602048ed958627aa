package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

// ClaimDispatcher queues agent actions for asynchronous processing.
type ClaimDispatcher interface {
	EnqueueBatch(ctx context.Context, actions []ports.ClaimActionInput) (int, error)
}

type ClaimHandler struct {
	reads      ports.DashboardService
	writes     ports.RecordService
	claims     ports.ClaimService
	dispatcher ClaimDispatcher
	idem       *Idempotency
	now        func() time.Time
}

func NewClaimHandler(
	reads ports.DashboardService,
	writes ports.RecordService,
	claims ports.ClaimService,
	dispatcher ClaimDispatcher,
	idem *Idempotency,
) *ClaimHandler {
	return &ClaimHandler{
		reads:      reads,
		writes:     writes,
		claims:     claims,
		dispatcher: dispatcher,
		idem:       idem,
		now:        time.Now,
	}
}

// List handles GET /v1/claims.
//
// @Summary      List visible claims
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Matches claim number, customer name or description"
// @Param        filter  query     string  false  "Status, or \"all\""
// @Success      200     {object}  listResponse[domain.Claim]
// @Failure      401     {object}  errorResponse
// @Router       /v1/claims [get]
func (h *ClaimHandler) List(c echo.Context) error {
	claims, err := h.reads.ListClaims(c.Request().Context(), queryOf(c.QueryParam("search"), c.QueryParam("filter")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(claims))
}

// Submit handles POST /v1/claims. A customer may only file against their
// own policies.
//
// @Summary      File a claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Replays return the original id"
// @Param        body             body      submitClaimRequest  true   "Claim"
// @Success      201              {object}  domain.Claim
// @Success      200              {object}  replayResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/claims [post]
func (h *ClaimHandler) Submit(c echo.Context) error {
	userID, role, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req submitClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var owner string
	if role == domain.RoleCustomer {
		owner = userID
	}
	return h.idem.create(c, "claims", func() (string, any, error) {
		claim, err := h.claims.SubmitClaim(c.Request().Context(), toSubmitInput(req, owner, h.now()))
		if err != nil {
			return "", nil, err
		}
		return claim.ID, claim, nil
	})
}

// Update handles PUT /v1/claims/:id. It replaces the record without running
// the workflow.
//
// @Summary      Update a claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Claim id"
// @Param        body  body      domain.Claim  true  "Claim"
// @Success      200   {object}  domain.Claim
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/claims/{id} [put]
func (h *ClaimHandler) Update(c echo.Context) error {
	var req domain.Claim
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.ID = c.Param("id")

	claim, err := h.writes.UpdateClaim(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}

// Transition handles POST /v1/claims/:id/transition.
//
// @Summary      Approve, reject or settle a claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Claim id"
// @Param        body  body      transitionRequest  true  "Target status"
// @Success      200   {object}  domain.Claim
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/claims/{id}/transition [post]
func (h *ClaimHandler) Transition(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claim, err := h.claims.TransitionClaim(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}

// TransitionBatch handles POST /v1/claims/transitions/batch. Actions are
// queued and applied in order per claim; failures are logged, not returned.
// When the queue fills up, the 503 body says how many leading actions were
// accepted so the client can resend the rest.
//
// @Summary      Queue a batch of claim actions
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      batchTransitionRequest  true  "Actions"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  batchRejectedResponse
// @Router       /v1/claims/transitions/batch [post]
func (h *ClaimHandler) TransitionBatch(c echo.Context) error {
	var req batchTransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	n, err := h.dispatcher.EnqueueBatch(c.Request().Context(), toActionInputs(req))
	if err != nil {
		// The first n actions are queued and will still run.
		return c.JSON(http.StatusServiceUnavailable, batchRejectedResponse{
			Error:    "queue full",
			Accepted: n,
			Rejected: len(req.Actions) - n,
		})
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "actions accepted", Count: n})
}
