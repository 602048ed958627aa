package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

type PaymentHandler struct {
	reads  ports.DashboardService
	writes ports.RecordService
	idem   *Idempotency
}

func NewPaymentHandler(reads ports.DashboardService, writes ports.RecordService, idem *Idempotency) *PaymentHandler {
	return &PaymentHandler{reads: reads, writes: writes, idem: idem}
}

// List handles GET /v1/payments.
//
// @Summary      List visible payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        filter  query     string  false  "Status, type or method, or \"all\""
// @Success      200     {object}  listResponse[domain.Payment]
// @Failure      401     {object}  errorResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.reads.ListPayments(c.Request().Context(), queryOf("", c.QueryParam("filter")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(payments))
}

// Create handles POST /v1/payments.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Replays return the original id"
// @Param        body             body      domain.Payment  true   "Payment"
// @Success      201              {object}  domain.Payment
// @Success      200              {object}  replayResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req domain.Payment
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.idem.create(c, "payments", func() (string, any, error) {
		p, err := h.writes.CreatePayment(c.Request().Context(), req)
		if err != nil {
			return "", nil, err
		}
		return p.ID, p, nil
	})
}
