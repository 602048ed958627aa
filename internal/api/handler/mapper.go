package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

// --- Request → Service input ---

func toSubmitInput(req submitClaimRequest, customerID string, now time.Time) ports.SubmitClaimInput {
	in := ports.SubmitClaimInput{
		PolicyID:     req.PolicyID,
		CustomerID:   customerID,
		Amount:       req.Amount,
		Description:  req.Description,
		IncidentDate: req.IncidentDate,
	}
	for _, d := range req.Documents {
		in.Documents = append(in.Documents, domain.Document{
			ID:         uuid.NewString(),
			Name:       d.Name,
			Type:       d.Type,
			Size:       d.Size,
			UploadDate: now.UTC(),
			URL:        d.URL,
		})
	}
	return in
}

func toActionInputs(req batchTransitionRequest) []ports.ClaimActionInput {
	out := make([]ports.ClaimActionInput, len(req.Actions))
	for i, a := range req.Actions {
		out[i] = ports.ClaimActionInput{ClaimID: a.ClaimID, Status: a.Status}
	}
	return out
}

// --- Service result → HTTP response ---

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		User:            s.User,
		IsAuthenticated: s.IsAuthenticated,
		Loading:         s.Loading,
		Error:           s.Error,
		State:           s.State(),
	}
}

func queryOf(search, filter string) ports.DashboardQuery {
	return ports.DashboardQuery{Search: search, Filter: filter}
}
