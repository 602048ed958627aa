package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

func newClaimHandler(claims *stubClaims, dispatcher *stubDispatcher) *ClaimHandler {
	return NewClaimHandler(nil, nil, claims, dispatcher, nopIdempotency())
}

func expectValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != field {
		t.Fatalf("expected field %q, got %q (%v)", field, ve.Field, ve)
	}
}

func TestClaimHandler_Submit_CustomerOwnsClaim(t *testing.T) {
	var got ports.SubmitClaimInput
	claims := &stubClaims{submitFn: func(_ context.Context, in ports.SubmitClaimInput) (*domain.Claim, error) {
		got = in
		return &domain.Claim{ID: "cl9", PolicyID: in.PolicyID, CustomerID: in.CustomerID, Status: domain.ClaimPending}, nil
	}}
	h := newClaimHandler(claims, nil)

	c, rec := newContext(http.MethodPost, "/v1/claims",
		`{"policyId":"p1","amount":750,"description":"Cracked windshield","incidentDate":"2024-03-01T00:00:00Z",
		  "documents":[{"name":"photo.jpg","type":"image/jpeg","size":1024}]}`)
	asUser(c, "c1", domain.RoleCustomer)

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.CustomerID != "c1" || got.PolicyID != "p1" || got.Amount != 750 {
		t.Fatalf("unexpected input: %+v", got)
	}
	if len(got.Documents) != 1 || got.Documents[0].ID == "" || got.Documents[0].UploadDate.IsZero() {
		t.Fatalf("documents should get an id and upload date: %+v", got.Documents)
	}
}

func TestClaimHandler_Submit_AgentFilesOnBehalf(t *testing.T) {
	var got ports.SubmitClaimInput
	claims := &stubClaims{submitFn: func(_ context.Context, in ports.SubmitClaimInput) (*domain.Claim, error) {
		got = in
		return &domain.Claim{ID: "cl9"}, nil
	}}
	h := newClaimHandler(claims, nil)

	c, _ := newContext(http.MethodPost, "/v1/claims",
		`{"policyId":"p1","amount":10,"description":"x","incidentDate":"2024-03-01T00:00:00Z"}`)
	asUser(c, "a1", domain.RoleAgent)

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.CustomerID != "" {
		t.Fatalf("agent submissions take the owner from the policy, got %q", got.CustomerID)
	}
}

func TestClaimHandler_Submit_Validation(t *testing.T) {
	claims := &stubClaims{submitFn: func(context.Context, ports.SubmitClaimInput) (*domain.Claim, error) {
		t.Fatalf("service should not be called")
		return nil, nil
	}}
	h := newClaimHandler(claims, nil)

	tests := []struct {
		name, body, field string
	}{
		{"zero amount", `{"policyId":"p1","amount":0,"description":"x","incidentDate":"2024-03-01T00:00:00Z"}`, "amount"},
		{"no policy", `{"amount":5,"description":"x","incidentDate":"2024-03-01T00:00:00Z"}`, "policyId"},
		{"unnamed document", `{"policyId":"p1","amount":5,"description":"x","incidentDate":"2024-03-01T00:00:00Z","documents":[{"type":"a/b"}]}`, "documents[0].name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/v1/claims", tc.body)
			asUser(c, "c1", domain.RoleCustomer)
			expectValidation(t, h.Submit(c), tc.field)
		})
	}
}

func TestClaimHandler_Submit_RequiresIdentity(t *testing.T) {
	h := newClaimHandler(&stubClaims{}, nil)

	c, _ := newContext(http.MethodPost, "/v1/claims", `{}`)
	var he *echo.HTTPError
	if err := h.Submit(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestClaimHandler_Transition(t *testing.T) {
	claims := &stubClaims{transitionFn: func(_ context.Context, id string, target domain.ClaimStatus) (*domain.Claim, error) {
		if id != "cl1" {
			t.Fatalf("unexpected id %q", id)
		}
		return &domain.Claim{ID: id, Status: target}, nil
	}}
	h := newClaimHandler(claims, nil)

	c, rec := newContext(http.MethodPost, "/v1/claims/cl1/transition", `{"status":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("cl1")
	if err := h.Transition(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodPost, "/v1/claims/cl1/transition", `{"status":"processing"}`)
	c.SetParamNames("id")
	c.SetParamValues("cl1")
	expectValidation(t, h.Transition(c), "status")
}

func TestClaimHandler_TransitionBatch(t *testing.T) {
	dispatcher := &stubDispatcher{}
	h := newClaimHandler(nil, dispatcher)

	c, rec := newContext(http.MethodPost, "/v1/claims/transitions/batch",
		`{"actions":[{"claimId":"cl1","status":"approved"},{"claimId":"cl2","status":"settled"}]}`)
	if err := h.TransitionBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	want := []ports.ClaimActionInput{{ClaimID: "cl1", Status: domain.ClaimApproved}, {ClaimID: "cl2", Status: domain.ClaimSettled}}
	if len(dispatcher.got) != 2 || dispatcher.got[0] != want[0] || dispatcher.got[1] != want[1] {
		t.Fatalf("unexpected queued actions: %+v", dispatcher.got)
	}
}

func TestClaimHandler_TransitionBatch_Rejects(t *testing.T) {
	h := newClaimHandler(nil, &stubDispatcher{})

	c, _ := newContext(http.MethodPost, "/v1/claims/transitions/batch", `{"actions":[]}`)
	expectValidation(t, h.TransitionBatch(c), "actions")

	c, _ = newContext(http.MethodPost, "/v1/claims/transitions/batch", `{"actions":[{"claimId":"cl1","status":"pending"}]}`)
	expectValidation(t, h.TransitionBatch(c), "actions[0].status")
}

func TestClaimHandler_TransitionBatch_QueueFull(t *testing.T) {
	dispatcher := &stubDispatcher{accept: 1, err: context.DeadlineExceeded}
	h := newClaimHandler(nil, dispatcher)

	c, rec := newContext(http.MethodPost, "/v1/claims/transitions/batch",
		`{"actions":[{"claimId":"cl1","status":"approved"},{"claimId":"cl2","status":"settled"},{"claimId":"cl3","status":"rejected"}]}`)
	if err := h.TransitionBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp batchRejectedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "queue full" || resp.Accepted != 1 || resp.Rejected != 2 {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if len(dispatcher.got) != 1 || dispatcher.got[0].ClaimID != "cl1" {
		t.Fatalf("expected only the first action queued, got %+v", dispatcher.got)
	}
}
