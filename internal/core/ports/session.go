package ports

import (
	"context"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// SessionManager owns the process-wide Session and its login lifecycle.
type SessionManager interface {
	LoginStart() error
	LoginSuccess(user domain.User) error
	LoginFailure(message string) error
	Logout()

	// Login runs a complete attempt: start, wait, verify, resolve.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// Current returns a copy of the session.
	Current() domain.Session
}
