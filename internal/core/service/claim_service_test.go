package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
	"github.com/claimwise/insurance-portal/internal/infrastructure/db/memory"
)

func newClaimSvc(t *testing.T) (*ClaimService, *memory.Store) {
	t.Helper()
	store := portalFixture(t)
	svc := NewClaimService(store, zerolog.Nop()).WithClock(func() time.Time { return fixedNow })
	return svc, store
}

func TestClaimService_ApprovePending(t *testing.T) {
	svc, store := newClaimSvc(t)

	got, err := svc.Approve(context.Background(), "cl1")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got.Status != domain.ClaimApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
	if got.ProcessedDate == nil || !got.ProcessedDate.Equal(today) {
		t.Fatalf("expected processedDate %v, got %v", today, got.ProcessedDate)
	}

	stored, _ := store.ClaimByID("cl1")
	if diff := cmp.Diff(*got, stored); diff != "" {
		t.Fatalf("store out of sync (-returned +stored):\n%s", diff)
	}
}

func TestClaimService_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		claimID string
		target  domain.ClaimStatus
		wantErr error
	}{
		{"reject pending", "cl1", domain.ClaimRejected, nil},
		{"settle processing", "cl2", domain.ClaimSettled, nil},
		{"settle pending", "cl1", domain.ClaimSettled, domain.ErrInvalidTransition},
		{"approve processing", "cl2", domain.ClaimApproved, domain.ErrInvalidTransition},
		{"back to pending", "cl2", domain.ClaimPending, domain.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newClaimSvc(t)
			before, _ := store.ClaimByID(tt.claimID)

			_, err := svc.TransitionClaim(context.Background(), tt.claimID, tt.target)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			after, _ := store.ClaimByID(tt.claimID)
			if diff := cmp.Diff(before, after); diff != "" {
				t.Fatalf("rejected transition changed the claim:\n%s", diff)
			}
		})
	}
}

func TestClaimService_TerminalStatesAreFinal(t *testing.T) {
	svc, _ := newClaimSvc(t)
	if _, err := svc.Reject(context.Background(), "cl1"); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	for _, target := range []domain.ClaimStatus{domain.ClaimApproved, domain.ClaimPending, domain.ClaimSettled} {
		if _, err := svc.TransitionClaim(context.Background(), "cl1", target); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("rejected → %s: expected ErrInvalidTransition, got %v", target, err)
		}
	}
}

func TestClaimService_UnknownClaim(t *testing.T) {
	svc, _ := newClaimSvc(t)

	_, err := svc.Settle(context.Background(), "missing")
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "claim" || nf.ID != "missing" {
		t.Fatalf("expected NotFoundError for claim, got %v", err)
	}
}

func TestClaimService_CancelledContext(t *testing.T) {
	svc, store := newClaimSvc(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Approve(ctx, "cl1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if c, _ := store.ClaimByID("cl1"); c.Status != domain.ClaimPending {
		t.Fatalf("claim changed: %s", c.Status)
	}
}

func TestClaimService_SubmitClaim(t *testing.T) {
	svc, store := newClaimSvc(t)

	got, err := svc.SubmitClaim(context.Background(), ports.SubmitClaimInput{
		PolicyID:     "p1",
		Amount:       800,
		Description:  "Broken windshield",
		IncidentDate: today.AddDate(0, 0, -2),
	})
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !regexp.MustCompile(`^CLM-2024-[0-9A-F]{8}$`).MatchString(got.ClaimNumber) {
		t.Fatalf("unexpected claim number %q", got.ClaimNumber)
	}
	want := domain.Claim{
		ID: got.ID, ClaimNumber: got.ClaimNumber,
		PolicyID: "p1", CustomerID: "c1", CustomerName: "John Doe", AgentID: "a1", AgentName: "Sarah Wilson",
		Type: domain.PolicyAuto, Amount: 800, Status: domain.ClaimPending, Description: "Broken windshield",
		IncidentDate: today.AddDate(0, 0, -2), SubmittedDate: today,
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("unexpected claim (-want +got):\n%s", diff)
	}
	if _, ok := store.ClaimByID(got.ID); !ok {
		t.Fatalf("claim not stored")
	}
}

func TestClaimService_SubmitClaim_SameDayIncident(t *testing.T) {
	svc, _ := newClaimSvc(t)

	got, err := svc.SubmitClaim(context.Background(), ports.SubmitClaimInput{
		PolicyID:     "p1",
		Amount:       100,
		Description:  "Fender bender in the parking lot",
		IncidentDate: fixedNow.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("incident earlier on the filing day must be accepted: %v", err)
	}
	if !got.IncidentDate.Equal(today) || !got.SubmittedDate.Equal(today) {
		t.Fatalf("expected both dates on %v, got incident %v submitted %v", today, got.IncidentDate, got.SubmittedDate)
	}
}

func TestClaimService_SubmitClaim_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    ports.SubmitClaimInput
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown policy",
			in:   ports.SubmitClaimInput{PolicyID: "nope", Amount: 1, Description: "x", IncidentDate: today},
			check: func(t *testing.T, err error) {
				if !domain.IsNotFound(err) {
					t.Fatalf("expected NotFoundError, got %v", err)
				}
			},
		},
		{
			name: "foreign customer",
			in:   ports.SubmitClaimInput{PolicyID: "p1", CustomerID: "c9", Amount: 1, Description: "x", IncidentDate: today},
			check: expectField("customerId"),
		},
		{
			name:  "zero amount",
			in:    ports.SubmitClaimInput{PolicyID: "p1", Description: "x", IncidentDate: today},
			check: expectField("amount"),
		},
		{
			name:  "incident after submission",
			in:    ports.SubmitClaimInput{PolicyID: "p1", Amount: 1, Description: "x", IncidentDate: today.AddDate(0, 0, 1)},
			check: expectField("incidentDate"),
		},
		{
			name:  "duplicate number",
			in:    ports.SubmitClaimInput{PolicyID: "p1", ClaimNumber: "CLM-2024-001", Amount: 1, Description: "x", IncidentDate: today},
			check: expectField("claimNumber"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newClaimSvc(t)
			_, err := svc.SubmitClaim(context.Background(), tt.in)
			tt.check(t, err)
			if n := len(store.Claims()); n != 2 {
				t.Fatalf("expected no new claim, have %d", n)
			}
		})
	}
}

func expectField(field string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if ve.Field != field {
			t.Fatalf("expected field %q, got %q (%v)", field, ve.Field, ve)
		}
	}
}
