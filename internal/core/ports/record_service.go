package ports

import (
	"context"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// RecordService is the presentation layer's write path. Updates check
// existence first and report *domain.NotFoundError, unlike the store
// primitive which no-ops.
type RecordService interface {
	CreateUser(ctx context.Context, u domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) (*domain.User, error)
	CreatePolicy(ctx context.Context, p domain.Policy) (*domain.Policy, error)
	UpdatePolicy(ctx context.Context, p domain.Policy) (*domain.Policy, error)
	UpdateClaim(ctx context.Context, c domain.Claim) (*domain.Claim, error)
	CreatePayment(ctx context.Context, p domain.Payment) (*domain.Payment, error)
}
