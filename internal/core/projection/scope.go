// Package projection derives the role-scoped views, filters and statistics
// the dashboards render. Every function is pure: it reads a Snapshot and
// returns fresh slices, leaving its inputs untouched.
package projection

import (
	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// Snapshot is a point-in-time copy of the domain store's collections.
type Snapshot struct {
	Users    []domain.User
	Policies []domain.Policy
	Claims   []domain.Claim
	Payments []domain.Payment
}

// Reader is the read side of the domain store that a snapshot is taken from.
type Reader interface {
	Users() []domain.User
	Policies() []domain.Policy
	Claims() []domain.Claim
	Payments() []domain.Payment
}

// SnapshotOf copies the collections out of r.
func SnapshotOf(r Reader) Snapshot {
	return Snapshot{
		Users:    r.Users(),
		Policies: r.Policies(),
		Claims:   r.Claims(),
		Payments: r.Payments(),
	}
}

// Scope is the subset of a snapshot visible to one user.
type Scope struct {
	Policies  []domain.Policy
	Claims    []domain.Claim
	Payments  []domain.Payment
	Customers []domain.User
}

// ScopeFor returns what user may see.
//
//	customer      → records whose customerId is the user
//	agent         → policies and claims whose agentId is the user, plus the
//	                customers owning at least one of those policies
//	administrator → everything
//
// An unknown role sees nothing.
func ScopeFor(user domain.User, snap Snapshot) Scope {
	switch user.Role {
	case domain.RoleCustomer:
		return Scope{
			Policies: where(snap.Policies, func(p domain.Policy) bool { return p.CustomerID == user.ID }),
			Claims:   where(snap.Claims, func(c domain.Claim) bool { return c.CustomerID == user.ID }),
			Payments: where(snap.Payments, func(p domain.Payment) bool { return p.CustomerID == user.ID }),
		}
	case domain.RoleAgent:
		policies := where(snap.Policies, func(p domain.Policy) bool { return p.AgentID == user.ID })
		return Scope{
			Policies:  policies,
			Claims:    where(snap.Claims, func(c domain.Claim) bool { return c.AgentID == user.ID }),
			Payments:  []domain.Payment{},
			Customers: customersOf(snap.Users, policies),
		}
	case domain.RoleAdministrator:
		return Scope{
			Policies:  where(snap.Policies, nil),
			Claims:    where(snap.Claims, nil),
			Payments:  where(snap.Payments, nil),
			Customers: where(snap.Users, func(u domain.User) bool { return u.Role == domain.RoleCustomer }),
		}
	}
	return Scope{
		Policies: []domain.Policy{},
		Claims:   []domain.Claim{},
		Payments: []domain.Payment{},
	}
}

// customersOf joins users to policies: a customer belongs to the agent when
// they own at least one of the agent's policies.
func customersOf(users []domain.User, policies []domain.Policy) []domain.User {
	owners := make(map[string]struct{}, len(policies))
	for _, p := range policies {
		owners[p.CustomerID] = struct{}{}
	}
	return where(users, func(u domain.User) bool {
		_, ok := owners[u.ID]
		return u.Role == domain.RoleCustomer && ok
	})
}

// ResolveNames refreshes the denormalised customer and agent names from the
// user join. Records pointing to unknown users keep their stored copy.
func ResolveNames(users []domain.User, policies []domain.Policy, claims []domain.Claim) ([]domain.Policy, []domain.Claim) {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	outP := make([]domain.Policy, len(policies))
	for i, p := range policies {
		if n, ok := names[p.CustomerID]; ok {
			p.CustomerName = n
		}
		if n, ok := names[p.AgentID]; ok {
			p.AgentName = n
		}
		outP[i] = p
	}

	outC := make([]domain.Claim, len(claims))
	for i, c := range claims {
		if n, ok := names[c.CustomerID]; ok {
			c.CustomerName = n
		}
		if n, ok := names[c.AgentID]; ok {
			c.AgentName = n
		}
		outC[i] = c
	}
	return outP, outC
}

// where returns the elements of in matching keep, in order. A nil keep
// copies everything.
func where[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}
