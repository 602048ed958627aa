package handler

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/api/middleware"
	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

type stubSessions struct {
	session   domain.Session
	loginFn   func(ctx context.Context, email, password string) (*domain.User, error)
	loggedOut bool
}

func (s *stubSessions) LoginStart() error { return nil }
func (s *stubSessions) LoginSuccess(domain.User) error { return nil }
func (s *stubSessions) LoginFailure(string) error { return nil }
func (s *stubSessions) Logout() {
	s.loggedOut = true
	s.session = domain.Session{}
}
func (s *stubSessions) Current() domain.Session { return s.session }
func (s *stubSessions) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubTokens struct{ token string }

func (s stubTokens) IssueToken(*domain.User) (string, error) { return s.token, nil }

type stubClaims struct {
	submitFn     func(ctx context.Context, in ports.SubmitClaimInput) (*domain.Claim, error)
	transitionFn func(ctx context.Context, id string, target domain.ClaimStatus) (*domain.Claim, error)
}

func (s *stubClaims) SubmitClaim(ctx context.Context, in ports.SubmitClaimInput) (*domain.Claim, error) {
	return s.submitFn(ctx, in)
}

func (s *stubClaims) TransitionClaim(ctx context.Context, id string, target domain.ClaimStatus) (*domain.Claim, error) {
	return s.transitionFn(ctx, id, target)
}

// stubDispatcher queues everything, or only the first accept actions when
// err is set.
type stubDispatcher struct {
	got    []ports.ClaimActionInput
	accept int
	err    error
}

func (s *stubDispatcher) EnqueueBatch(_ context.Context, actions []ports.ClaimActionInput) (int, error) {
	if s.err != nil {
		n := min(s.accept, len(actions))
		s.got = append(s.got, actions[:n]...)
		return n, s.err
	}
	s.got = append(s.got, actions...)
	return len(actions), nil
}

// stubRecords only implements CreateUser; the other writes are unused here.
type stubRecords struct {
	ports.RecordService
	created int
}

func (s *stubRecords) CreateUser(_ context.Context, u domain.User) (*domain.User, error) {
	s.created++
	u.ID = fmt.Sprintf("u%d", s.created)
	return &u, nil
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, scope, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[scope+"/"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key, id string) (string, error) {
	k := scope + "/" + key
	if bound, ok := s.keys[k]; ok {
		return bound, nil
	}
	s.keys[k] = id
	return id, nil
}

// newContext builds a JSON request context with the validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser attaches the identity the Auth middleware would.
func asUser(c echo.Context, id string, role domain.Role) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxRole, string(role))
}

func nopIdempotency() *Idempotency { return NewIdempotency(nil, zerolog.Nop()) }
