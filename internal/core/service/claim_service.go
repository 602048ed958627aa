package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/api/metrics"
	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

var _ ports.ClaimService = (*ClaimService)(nil)

// ClaimService applies agent actions and customer filings to claims.
type ClaimService struct {
	// mu makes the read-check-write of a transition atomic with respect to
	// other transitions.
	mu    sync.Mutex
	store ports.DomainStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewClaimService(store ports.DomainStore, log zerolog.Logger) *ClaimService {
	return &ClaimService{store: store, log: log, now: time.Now}
}

// WithClock replaces the time source used for processed and submitted dates.
func (s *ClaimService) WithClock(now func() time.Time) *ClaimService {
	s.now = now
	return s
}

// TransitionClaim moves claimID to target and stamps processedDate with
// today's date.
func (s *ClaimService) TransitionClaim(ctx context.Context, claimID string, target domain.ClaimStatus) (*domain.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.store.ClaimByID(claimID)
	if !ok {
		metrics.ClaimTransitionErrorsTotal.WithLabelValues("not_found").Inc()
		return nil, &domain.NotFoundError{Kind: "claim", ID: claimID}
	}

	from := claim.Status
	if !from.CanTransitionTo(target) {
		metrics.ClaimTransitionErrorsTotal.WithLabelValues("invalid_transition").Inc()
		return nil, fmt.Errorf("transition claim %s: %w (from %s to %s)", claimID, domain.ErrInvalidTransition, from, target)
	}

	processed := dayOf(s.now())
	claim.Status = target
	claim.ProcessedDate = &processed

	if err := s.store.UpdateClaim(claim); err != nil {
		metrics.ClaimTransitionErrorsTotal.WithLabelValues("store").Inc()
		s.log.Error().Err(err).Str("claim_id", claimID).Msg("failed to write claim transition")
		return nil, fmt.Errorf("transition claim %s: %w", claimID, err)
	}

	metrics.ClaimTransitionsTotal.WithLabelValues(string(from), string(target)).Inc()
	s.log.Info().
		Str("claim_id", claimID).
		Str("from", string(from)).
		Str("to", string(target)).
		Msg("claim transitioned")
	return &claim, nil
}

// Approve moves a pending claim to approved.
func (s *ClaimService) Approve(ctx context.Context, claimID string) (*domain.Claim, error) {
	return s.TransitionClaim(ctx, claimID, domain.ClaimApproved)
}

// Reject moves a pending claim to rejected.
func (s *ClaimService) Reject(ctx context.Context, claimID string) (*domain.Claim, error) {
	return s.TransitionClaim(ctx, claimID, domain.ClaimRejected)
}

// Settle moves a processing claim to settled.
func (s *ClaimService) Settle(ctx context.Context, claimID string) (*domain.Claim, error) {
	return s.TransitionClaim(ctx, claimID, domain.ClaimSettled)
}

// SubmitClaim files a new pending claim against an existing policy. Type,
// customer, agent and customer name are taken from the policy. Incident and
// submission are both recorded as calendar days.
func (s *ClaimService) SubmitClaim(ctx context.Context, in ports.SubmitClaimInput) (*domain.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	policy, ok := s.store.PolicyByID(in.PolicyID)
	if !ok {
		return nil, &domain.NotFoundError{Kind: "policy", ID: in.PolicyID}
	}
	if in.CustomerID != "" && in.CustomerID != policy.CustomerID {
		return nil, domain.NewValidationError("customerId", "does not own policy %q", policy.ID)
	}

	now := s.now()
	claim := domain.Claim{
		ID:            in.ID,
		PolicyID:      policy.ID,
		CustomerID:    policy.CustomerID,
		CustomerName:  policy.CustomerName,
		AgentID:       policy.AgentID,
		AgentName:     policy.AgentName,
		Type:          policy.Type,
		ClaimNumber:   in.ClaimNumber,
		Amount:        in.Amount,
		Status:        domain.ClaimPending,
		Description:   in.Description,
		IncidentDate:  dayOf(in.IncidentDate),
		SubmittedDate: dayOf(now),
		Documents:     in.Documents,
	}
	if u, ok := s.store.UserByID(policy.CustomerID); ok {
		claim.CustomerName = u.Name
	}
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	if claim.ClaimNumber == "" {
		claim.ClaimNumber = recordNumber("CLM", now)
	}

	if err := s.store.AddClaim(claim); err != nil {
		return nil, err
	}

	metrics.ClaimsSubmittedTotal.WithLabelValues(string(claim.Type)).Inc()
	s.log.Info().
		Str("claim_id", claim.ID).
		Str("claim_number", claim.ClaimNumber).
		Str("policy_id", policy.ID).
		Msg("claim submitted")
	return &claim, nil
}
