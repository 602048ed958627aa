package ports

import (
	"context"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// CredentialRepository is the email → {password hash, user id} lookup table
// consulted during login.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	Register(ctx context.Context, cred domain.Credential) error
}
