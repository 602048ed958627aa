package ports

import (
	"context"
	"time"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// CredentialVerifier resolves an email/password pair to a User. A mismatch or
// a dangling user reference is reported as *domain.AuthError.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// TokenClaims is what an issued session token asserts.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
}

type AuthService interface {
	CredentialVerifier
	RegisterCredential(ctx context.Context, email, password, userID string) error
	IssueToken(user *domain.User) (string, error)
	ParseToken(token string) (*TokenClaims, error)
}
