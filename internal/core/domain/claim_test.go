package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClaimStatus_CanTransitionTo(t *testing.T) {
	all := []ClaimStatus{ClaimPending, ClaimProcessing, ClaimApproved, ClaimRejected, ClaimSettled}
	allowed := map[[2]ClaimStatus]bool{
		{ClaimPending, ClaimApproved}:   true,
		{ClaimPending, ClaimRejected}:   true,
		{ClaimProcessing, ClaimSettled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]ClaimStatus{from, to}]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestClaimStatus_Valid(t *testing.T) {
	if !ClaimSettled.Valid() {
		t.Fatalf("settled should be valid")
	}
	if ClaimStatus("closed").Valid() {
		t.Fatalf("closed should not be valid")
	}
}

func TestSession_State(t *testing.T) {
	u := &User{ID: "u1"}
	cases := []struct {
		name string
		s    Session
		want SessionState
	}{
		{"zero", Session{}, SessionAnonymous},
		{"loading", Session{Loading: true}, SessionAuthenticating},
		{"authenticated", Session{User: u, IsAuthenticated: true}, SessionAuthenticated},
		{"failed", Session{Error: MsgInvalidCredentials}, SessionAnonymous},
	}
	for _, tc := range cases {
		if got := tc.s.State(); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestErrors_Unwrap(t *testing.T) {
	err := fmt.Errorf("update claim: %w", &NotFoundError{Kind: "claim", ID: "c1"})
	if !IsNotFound(err) {
		t.Fatalf("expected IsNotFound through wrap")
	}

	var ve *ValidationError
	if !errors.As(fmt.Errorf("add: %w", NewValidationError("customerId", "must reference a customer")), &ve) {
		t.Fatalf("expected ValidationError through wrap")
	}
	if ve.Field != "customerId" {
		t.Errorf("unexpected field: %s", ve.Field)
	}
}
