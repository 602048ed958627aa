package handler

import (
	"time"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type sessionResponse struct {
	User            *domain.User        `json:"user"`
	IsAuthenticated bool                `json:"isAuthenticated"`
	Loading         bool                `json:"loading"`
	Error           string              `json:"error,omitempty"`
	State           domain.SessionState `json:"state"`
}

// --- claims ---

type documentRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Size int64  `json:"size" validate:"gte=0"`
	URL  string `json:"url,omitempty"`
}

type submitClaimRequest struct {
	PolicyID     string            `json:"policyId" validate:"required"`
	Amount       float64           `json:"amount" validate:"required,gt=0"`
	Description  string            `json:"description" validate:"required"`
	IncidentDate time.Time         `json:"incidentDate" validate:"required"`
	Documents    []documentRequest `json:"documents" validate:"omitempty,dive"`
}

type transitionRequest struct {
	Status domain.ClaimStatus `json:"status" validate:"required,oneof=approved rejected settled"`
}

type claimActionRequest struct {
	ClaimID string             `json:"claimId" validate:"required"`
	Status  domain.ClaimStatus `json:"status" validate:"required,oneof=approved rejected settled"`
}

type batchTransitionRequest struct {
	Actions []claimActionRequest `json:"actions" validate:"required,min=1,max=500,dive"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// batchRejectedResponse reports a batch the queue could only partly take.
// Actions[:accepted] are queued; the rest were dropped.
type batchRejectedResponse struct {
	Error    string `json:"error"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}

// --- records ---

// replayResponse answers a create retried with an Idempotency-Key that
// already produced a record.
type replayResponse struct {
	ID       string `json:"id"`
	Replayed bool   `json:"replayed"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: len(items)}
}
