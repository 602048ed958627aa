package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/api/metrics"
	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

var _ ports.SessionManager = (*SessionManager)(nil)

// SessionManager owns the single process-wide session.
//
//	Anonymous ──LoginStart──▶ Authenticating ──LoginSuccess──▶ Authenticated
//	    ▲                           │                              │
//	    └────────LoginFailure───────┘                              │
//	    └────────────────────────Logout────────────────────────────┘
//
// The manager is not reentrant: LoginStart while Authenticating returns
// ErrLoginInProgress. LoginSuccess and LoginFailure outside Authenticating
// return ErrSessionState. Neither changes the session.
type SessionManager struct {
	mu       sync.Mutex
	session  domain.Session
	verifier ports.CredentialVerifier
	latency  time.Duration
	log      zerolog.Logger
}

// NewSessionManager returns a manager in the Anonymous state. latency is the
// simulated wait before credentials are verified; zero skips it.
func NewSessionManager(verifier ports.CredentialVerifier, latency time.Duration, log zerolog.Logger) *SessionManager {
	return &SessionManager{verifier: verifier, latency: latency, log: log}
}

func (m *SessionManager) Current() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (m *SessionManager) LoginStart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Loading {
		return domain.ErrLoginInProgress
	}
	m.session.Loading = true
	m.session.Error = ""
	return nil
}

func (m *SessionManager) LoginSuccess(user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.Loading {
		return domain.ErrSessionState
	}
	m.session = domain.Session{User: &user, IsAuthenticated: true}
	return nil
}

func (m *SessionManager) LoginFailure(message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.Loading {
		return domain.ErrSessionState
	}
	m.session = domain.Session{Error: message}
	return nil
}

func (m *SessionManager) Logout() {
	m.mu.Lock()
	m.session = domain.Session{}
	m.mu.Unlock()
}

// Login runs one attempt to completion. It always resolves the session to
// Authenticated or to Anonymous with the error set; cancelling ctx during the
// wait resolves it as a failure.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" {
		return nil, domain.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	if err := m.LoginStart(); err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	started := time.Now()
	defer func() { metrics.LoginDuration.Observe(time.Since(started).Seconds()) }()

	if err := m.wait(ctx); err != nil {
		return nil, m.fail(email, &domain.AuthError{Message: domain.MsgLoginFailed}, err)
	}

	user, err := m.verifier.Verify(ctx, email, password)
	if err != nil {
		var ae *domain.AuthError
		if !errors.As(err, &ae) {
			ae = &domain.AuthError{Message: domain.MsgLoginFailed}
		}
		return nil, m.fail(email, ae, err)
	}

	if err := m.LoginSuccess(*user); err != nil {
		// The session was logged out while this attempt was in flight.
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	m.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return user, nil
}

func (m *SessionManager) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// fail records ae into the session and returns it. cause is logged only.
func (m *SessionManager) fail(email string, ae *domain.AuthError, cause error) error {
	if err := m.LoginFailure(ae.Message); err != nil {
		m.log.Warn().Err(err).Str("email", email).Msg("login resolved after session reset")
	}
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	m.log.Info().Err(cause).Str("email", email).Msg("login failed")
	return ae
}
