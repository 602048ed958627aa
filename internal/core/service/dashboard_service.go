package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
	"github.com/claimwise/insurance-portal/internal/core/projection"
)

var _ ports.DashboardService = (*DashboardService)(nil)

// SessionReader is the read half of ports.SessionManager.
type SessionReader interface {
	Current() domain.Session
}

// DashboardService renders the role-scoped read models for whoever holds the
// session. It never writes.
type DashboardService struct {
	store   ports.StoreReader
	session SessionReader
	log     zerolog.Logger
}

func NewDashboardService(store ports.StoreReader, session SessionReader, log zerolog.Logger) *DashboardService {
	return &DashboardService{store: store, session: session, log: log}
}

// Dashboard composes the full dashboard for the session user. Stats are
// computed over the unfiltered scope; the query narrows only the lists.
//
// Filter is applied to each list only when it is a value that list can be
// filtered by, so "auto" narrows policies without emptying payments.
func (s *DashboardService) Dashboard(ctx context.Context, q ports.DashboardQuery) (*ports.Dashboard, error) {
	user, snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	scope := projection.ScopeFor(user, snap)

	out := &ports.Dashboard{
		Role:     user.Role,
		User:     user,
		Policies: projection.FilterPolicies(scope.Policies, q.Search, selectorIf(q.Filter, policySelectorFor(user.Role))),
		Claims:   projection.FilterClaims(scope.Claims, q.Search, selectorIf(q.Filter, claimSelector)),
		Payments: projection.FilterPayments(scope.Payments, selectorIf(q.Filter, paymentSelector)),
	}

	switch user.Role {
	case domain.RoleCustomer:
		stats := projection.ComputeCustomerStats(scope)
		out.CustomerStats = &stats
	case domain.RoleAgent:
		stats := projection.ComputeAgentStats(scope)
		out.AgentStats = &stats
		out.Customers = projection.FilterUsers(scope.Customers, q.Search, projection.SelectAll)
	case domain.RoleAdministrator:
		stats := projection.ComputeAdminStats(snap)
		out.AdminStats = &stats
		out.Customers = projection.FilterUsers(scope.Customers, q.Search, projection.SelectAll)
		out.Users = projection.FilterUsers(snap.Users, q.Search, selectorIf(q.Filter, userSelector))
	}

	s.log.Debug().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Int("policies", len(out.Policies)).
		Int("claims", len(out.Claims)).
		Msg("dashboard composed")
	return out, nil
}

// ListUsers returns the users visible to the session user: everyone for an
// administrator, the agent's customers for an agent, the user alone for a
// customer.
func (s *DashboardService) ListUsers(ctx context.Context, q ports.DashboardQuery) ([]domain.User, error) {
	user, snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var visible []domain.User
	switch user.Role {
	case domain.RoleAdministrator:
		visible = snap.Users
	case domain.RoleAgent:
		visible = projection.ScopeFor(user, snap).Customers
	case domain.RoleCustomer:
		visible = []domain.User{user}
	}
	return projection.FilterUsers(visible, q.Search, q.Filter), nil
}

func (s *DashboardService) ListPolicies(ctx context.Context, q ports.DashboardQuery) ([]domain.Policy, error) {
	user, snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return projection.FilterPolicies(projection.ScopeFor(user, snap).Policies, q.Search, q.Filter), nil
}

func (s *DashboardService) ListClaims(ctx context.Context, q ports.DashboardQuery) ([]domain.Claim, error) {
	user, snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return projection.FilterClaims(projection.ScopeFor(user, snap).Claims, q.Search, q.Filter), nil
}

func (s *DashboardService) ListPayments(ctx context.Context, q ports.DashboardQuery) ([]domain.Payment, error) {
	user, snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return projection.FilterPayments(projection.ScopeFor(user, snap).Payments, q.Filter), nil
}

// load resolves the session user and takes a snapshot with names re-derived
// from the user join.
func (s *DashboardService) load(ctx context.Context) (domain.User, projection.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, projection.Snapshot{}, err
	}
	sess := s.session.Current()
	if !sess.IsAuthenticated || sess.User == nil {
		return domain.User{}, projection.Snapshot{}, domain.ErrUnauthenticated
	}

	snap := projection.SnapshotOf(s.store)
	snap.Policies, snap.Claims = projection.ResolveNames(snap.Users, snap.Policies, snap.Claims)

	// Prefer the stored record so profile edits show without a re-login.
	user := *sess.User
	if stored, ok := s.store.UserByID(user.ID); ok {
		user = stored
	}
	return user, snap, nil
}

func policySelector(v string) bool {
	return domain.PolicyStatus(v).Valid() || domain.PolicyType(v).Valid()
}

func policyStatusSelector(v string) bool { return domain.PolicyStatus(v).Valid() }

// policySelectorFor picks the dashboard's policy selector. Only the admin
// dashboard offers type filtering; the other roles filter by status.
func policySelectorFor(role domain.Role) func(string) bool {
	if role == domain.RoleAdministrator {
		return policySelector
	}
	return policyStatusSelector
}

func claimSelector(v string) bool { return domain.ClaimStatus(v).Valid() }

func userSelector(v string) bool { return domain.Role(v).Valid() }

func paymentSelector(v string) bool {
	return domain.PaymentStatus(v).Valid() || domain.PaymentType(v).Valid() || domain.PaymentMethod(v).Valid()
}

// selectorIf returns v when applies accepts it and the "all" sentinel
// otherwise.
func selectorIf(v string, applies func(string) bool) string {
	if applies(v) {
		return v
	}
	return projection.SelectAll
}
