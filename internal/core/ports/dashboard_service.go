package ports

import (
	"context"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/projection"
)

// DashboardQuery carries the search box and the category selector.
type DashboardQuery struct {
	Search string
	Filter string // "all" or empty disables the categorical filter
}

// Dashboard is everything one role's dashboard renders. Exactly one of the
// stats blocks is set, matching Role.
type Dashboard struct {
	Role          domain.Role               `json:"role"`
	User          domain.User               `json:"user"`
	CustomerStats *projection.CustomerStats `json:"customerStats,omitempty"`
	AgentStats    *projection.AgentStats    `json:"agentStats,omitempty"`
	AdminStats    *projection.AdminStats    `json:"adminStats,omitempty"`
	Policies      []domain.Policy           `json:"policies"`
	Claims        []domain.Claim            `json:"claims"`
	Payments      []domain.Payment          `json:"payments"`
	Customers     []domain.User             `json:"customers,omitempty"`
	Users         []domain.User             `json:"users,omitempty"`
}

// DashboardService composes role-scoped read models for the current session.
type DashboardService interface {
	Dashboard(ctx context.Context, q DashboardQuery) (*Dashboard, error)
	ListUsers(ctx context.Context, q DashboardQuery) ([]domain.User, error)
	ListPolicies(ctx context.Context, q DashboardQuery) ([]domain.Policy, error)
	ListClaims(ctx context.Context, q DashboardQuery) ([]domain.Claim, error)
	ListPayments(ctx context.Context, q DashboardQuery) ([]domain.Payment, error)
}
