package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

type stubVerifier struct {
	verifyFn func(ctx context.Context, email, password string) (*domain.User, error)
}

func (v *stubVerifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	return v.verifyFn(ctx, email, password)
}

// observingVerifier delegates to next and records the session state seen at
// the moment verification runs.
type observingVerifier struct {
	next    ports.CredentialVerifier
	manager *SessionManager
	seen    []domain.SessionState
}

func (v *observingVerifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	v.seen = append(v.seen, v.manager.Current().State())
	return v.next.Verify(ctx, email, password)
}

func newObservedManager(t *testing.T) (*SessionManager, *observingVerifier) {
	t.Helper()
	auth, _ := newTestAuth(t, portalFixture(t))
	obs := &observingVerifier{next: auth}
	m := NewSessionManager(obs, 0, zerolog.Nop())
	obs.manager = m
	return m, obs
}

func TestSessionManager_LoginCustomer(t *testing.T) {
	m, obs := newObservedManager(t)

	if got := m.Current().State(); got != domain.SessionAnonymous {
		t.Fatalf("expected anonymous initial state, got %s", got)
	}

	user, err := m.Login(context.Background(), "john.doe@email.com", "customer123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if len(obs.seen) != 1 || obs.seen[0] != domain.SessionAuthenticating {
		t.Fatalf("expected authenticating during verification, saw %v", obs.seen)
	}
	s := m.Current()
	if s.State() != domain.SessionAuthenticated || !s.IsAuthenticated || s.Loading || s.Error != "" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if s.User == nil || s.User.Role != domain.RoleCustomer || user.ID != "c1" {
		t.Fatalf("unexpected user: %+v", s.User)
	}
}

func TestSessionManager_LoginWrongPassword(t *testing.T) {
	m, _ := newObservedManager(t)

	_, err := m.Login(context.Background(), "john.doe@email.com", "nope")
	expectAuthError(t, err, "Invalid email or password")

	s := m.Current()
	if s.State() != domain.SessionAnonymous || s.IsAuthenticated || s.User != nil {
		t.Fatalf("expected anonymous session, got %+v", s)
	}
	if s.Error != "Invalid email or password" {
		t.Fatalf("unexpected session error: %q", s.Error)
	}
}

func TestSessionManager_FailureClearsPreviousUser(t *testing.T) {
	m, _ := newObservedManager(t)
	if _, err := m.Login(context.Background(), "john.doe@email.com", "customer123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, _ = m.Login(context.Background(), "john.doe@email.com", "wrong")
	if s := m.Current(); s.User != nil || s.IsAuthenticated {
		t.Fatalf("failed re-login must leave the session anonymous: %+v", s)
	}
}

func TestSessionManager_EmptyFieldsLeaveSessionUntouched(t *testing.T) {
	called := false
	m := NewSessionManager(&stubVerifier{verifyFn: func(context.Context, string, string) (*domain.User, error) {
		called = true
		return nil, nil
	}}, 0, zerolog.Nop())

	for _, tc := range []struct{ email, password, field string }{
		{"", "pw", "email"},
		{"a@b.c", "", "password"},
	} {
		_, err := m.Login(context.Background(), tc.email, tc.password)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("expected ValidationError on %s, got %v", tc.field, err)
		}
	}
	if called {
		t.Fatalf("verifier should not run")
	}
	if s := m.Current(); s != (domain.Session{}) {
		t.Fatalf("session changed: %+v", s)
	}
}

func TestSessionManager_UnexpectedVerifierError(t *testing.T) {
	m := NewSessionManager(&stubVerifier{verifyFn: func(context.Context, string, string) (*domain.User, error) {
		return nil, errors.New("registry offline")
	}}, 0, zerolog.Nop())

	_, err := m.Login(context.Background(), "a@b.c", "pw")
	expectAuthError(t, err, "Login failed")
	if m.Current().Error != "Login failed" {
		t.Fatalf("expected generic message in session, got %q", m.Current().Error)
	}
}

func TestSessionManager_SecondLoginWhileAuthenticating(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	m := NewSessionManager(&stubVerifier{verifyFn: func(context.Context, string, string) (*domain.User, error) {
		close(entered)
		<-release
		return &domain.User{ID: "c1", Role: domain.RoleCustomer}, nil
	}}, 0, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := m.Login(context.Background(), "a@b.c", "pw")
		done <- err
	}()
	<-entered

	if s := m.Current(); !s.Loading {
		t.Fatalf("expected loading while verification is outstanding: %+v", s)
	}
	if _, err := m.Login(context.Background(), "a@b.c", "pw"); !errors.Is(err, domain.ErrLoginInProgress) {
		t.Fatalf("expected ErrLoginInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first login should still succeed: %v", err)
	}
	if !m.Current().IsAuthenticated {
		t.Fatalf("expected authenticated session")
	}
}

func TestSessionManager_LatencyHonoursCancellation(t *testing.T) {
	verified := false
	m := NewSessionManager(&stubVerifier{verifyFn: func(context.Context, string, string) (*domain.User, error) {
		verified = true
		return &domain.User{ID: "c1"}, nil
	}}, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Login(ctx, "a@b.c", "pw")
	expectAuthError(t, err, "Login failed")
	if verified {
		t.Fatalf("verification should not run after cancellation")
	}
	if s := m.Current(); s.Loading || s.Error != "Login failed" {
		t.Fatalf("attempt must resolve to failure: %+v", s)
	}
}

func TestSessionManager_Preconditions(t *testing.T) {
	m := NewSessionManager(&stubVerifier{}, 0, zerolog.Nop())

	if err := m.LoginSuccess(domain.User{ID: "c1"}); !errors.Is(err, domain.ErrSessionState) {
		t.Fatalf("LoginSuccess while anonymous: expected ErrSessionState, got %v", err)
	}
	if err := m.LoginFailure("x"); !errors.Is(err, domain.ErrSessionState) {
		t.Fatalf("LoginFailure while anonymous: expected ErrSessionState, got %v", err)
	}
	if s := m.Current(); s != (domain.Session{}) {
		t.Fatalf("rejected calls must not change the session: %+v", s)
	}

	if err := m.LoginStart(); err != nil {
		t.Fatalf("LoginStart: %v", err)
	}
	if err := m.LoginStart(); !errors.Is(err, domain.ErrLoginInProgress) {
		t.Fatalf("expected ErrLoginInProgress, got %v", err)
	}
	if err := m.LoginSuccess(domain.User{ID: "c1", Role: domain.RoleCustomer}); err != nil {
		t.Fatalf("LoginSuccess: %v", err)
	}

	// Authenticated → Authenticating is allowed and clears the error only.
	if err := m.LoginStart(); err != nil {
		t.Fatalf("LoginStart from authenticated: %v", err)
	}
	if s := m.Current(); s.State() != domain.SessionAuthenticating || s.Error != "" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestSessionManager_Logout(t *testing.T) {
	m, _ := newObservedManager(t)
	if _, err := m.Login(context.Background(), "john.doe@email.com", "customer123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	m.Logout()
	if s := m.Current(); s != (domain.Session{}) {
		t.Fatalf("expected zero session after logout, got %+v", s)
	}

	// Logout during an attempt: the late success is refused.
	if err := m.LoginStart(); err != nil {
		t.Fatalf("LoginStart: %v", err)
	}
	m.Logout()
	if err := m.LoginSuccess(domain.User{ID: "c1"}); !errors.Is(err, domain.ErrSessionState) {
		t.Fatalf("expected ErrSessionState after logout, got %v", err)
	}
}

func TestSessionManager_CurrentIsACopy(t *testing.T) {
	m, _ := newObservedManager(t)
	if _, err := m.Login(context.Background(), "john.doe@email.com", "customer123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	s := m.Current()
	s.User.Name = "Mallory"
	if m.Current().User.Name != "John Doe" {
		t.Fatalf("Current leaked internal user pointer")
	}
}
