package ports

import (
	"context"
	"time"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// SubmitClaimInput carries what a customer provides when filing a claim.
// Type, agent and names are taken from the parent policy.
type SubmitClaimInput struct {
	ID           string // optional; generated when empty
	ClaimNumber  string // optional; generated when empty
	PolicyID     string
	CustomerID   string // optional; must own the policy when set
	Amount       float64
	Description  string
	IncidentDate time.Time
	Documents    []domain.Document
}

// ClaimActionInput is one queued agent action.
type ClaimActionInput struct {
	ClaimID string
	Status  domain.ClaimStatus
}

// ClaimService drives the claim workflow.
type ClaimService interface {
	// TransitionClaim moves a claim to target. It fails with
	// *domain.NotFoundError for an unknown id and wraps
	// domain.ErrInvalidTransition for a move outside the workflow.
	TransitionClaim(ctx context.Context, claimID string, target domain.ClaimStatus) (*domain.Claim, error)
	SubmitClaim(ctx context.Context, in SubmitClaimInput) (*domain.Claim, error)
}
