package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/infrastructure/db/memory"
)

var (
	joined   = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow = time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	today    = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
)

// stubCredRepo is a map-backed ports.CredentialRepository.
type stubCredRepo struct {
	creds   map[string]domain.Credential
	findErr error
}

func newStubCredRepo() *stubCredRepo {
	return &stubCredRepo{creds: make(map[string]domain.Credential)}
}

func (r *stubCredRepo) Register(_ context.Context, cred domain.Credential) error {
	r.creds[cred.Email] = cred
	return nil
}

func (r *stubCredRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.creds[email]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "credential", ID: email}
	}
	return &c, nil
}

// portalFixture seeds a store the way the demo data does, on a small scale:
//
//	c1 John Doe (customer)   a1 Sarah Wilson (agent)   adm Admin (administrator)
//	p1 auto, c1/a1           cl1 pending on p1         cl2 processing on p1
func portalFixture(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore(zerolog.Nop())

	users := []domain.User{
		{ID: "c1", Email: "john.doe@email.com", Name: "John Doe", Role: domain.RoleCustomer, JoinDate: joined},
		{ID: "a1", Email: "sarah.wilson@claimwise.com", Name: "Sarah Wilson", Role: domain.RoleAgent, JoinDate: joined},
		{ID: "adm", Email: "admin@claimwise.com", Name: "Admin", Role: domain.RoleAdministrator, JoinDate: joined},
	}
	for _, u := range users {
		if err := s.AddUser(u); err != nil {
			t.Fatalf("AddUser(%s): %v", u.ID, err)
		}
	}

	if err := s.AddPolicy(domain.Policy{
		ID: "p1", CustomerID: "c1", CustomerName: "John Doe", AgentID: "a1", AgentName: "Sarah Wilson",
		Type: domain.PolicyAuto, PolicyNumber: "POL-2024-001", Premium: 1200, Coverage: 50000,
		Status: domain.PolicyActive, StartDate: joined, EndDate: joined.AddDate(1, 0, 0), CreatedAt: joined,
	}); err != nil {
		t.Fatalf("AddPolicy: %v", err)
	}

	for _, c := range []domain.Claim{
		{ID: "cl1", Status: domain.ClaimPending, ClaimNumber: "CLM-2024-001"},
		{ID: "cl2", Status: domain.ClaimProcessing, ClaimNumber: "CLM-2024-002"},
	} {
		c.PolicyID, c.CustomerID, c.CustomerName, c.AgentID = "p1", "c1", "John Doe", "a1"
		c.Type, c.Amount, c.Description = domain.PolicyAuto, 2500, "Collision on highway"
		c.IncidentDate, c.SubmittedDate = joined.AddDate(0, 1, 0), joined.AddDate(0, 1, 2)
		if err := s.AddClaim(c); err != nil {
			t.Fatalf("AddClaim(%s): %v", c.ID, err)
		}
	}
	return s
}

// newTestAuth builds an AuthService over a stub repo holding the customer
// login used across the portal tests.
func newTestAuth(t *testing.T, store *memory.Store) (*AuthService, *stubCredRepo) {
	t.Helper()
	repo := newStubCredRepo()
	auth := NewAuthService(repo, store, AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost})
	if err := auth.RegisterCredential(context.Background(), "john.doe@email.com", "customer123", "c1"); err != nil {
		t.Fatalf("RegisterCredential: %v", err)
	}
	return auth, repo
}
