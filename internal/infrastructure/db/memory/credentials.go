package memory

import (
	"context"
	"sync"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

var _ ports.CredentialRepository = (*CredentialRegistry)(nil)

// CredentialRegistry is the login lookup table, keyed by exact email.
type CredentialRegistry struct {
	mu    sync.RWMutex
	byKey map[string]domain.Credential
}

func NewCredentialRegistry() *CredentialRegistry {
	return &CredentialRegistry{byKey: make(map[string]domain.Credential)}
}

// Register adds or replaces the entry for cred.Email.
func (r *CredentialRegistry) Register(_ context.Context, cred domain.Credential) error {
	if cred.Email == "" {
		return domain.NewValidationError("email", "is required")
	}
	if cred.UserID == "" {
		return domain.NewValidationError("userId", "is required")
	}
	r.mu.Lock()
	r.byKey[cred.Email] = cred
	r.mu.Unlock()
	return nil
}

func (r *CredentialRegistry) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.byKey[email]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "credential", ID: email}
	}
	return &cred, nil
}
