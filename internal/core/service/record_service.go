package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

var _ ports.RecordService = (*RecordService)(nil)

// RecordService is the write path used by the management screens. It fills
// generated fields, refreshes denormalised names and turns the store's silent
// update miss into a NotFoundError.
type RecordService struct {
	store ports.DomainStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewRecordService(store ports.DomainStore, log zerolog.Logger) *RecordService {
	return &RecordService{store: store, log: log, now: time.Now}
}

// WithClock replaces the time source used for generated dates and numbers.
func (s *RecordService) WithClock(now func() time.Time) *RecordService {
	s.now = now
	return s
}

func (s *RecordService) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.JoinDate.IsZero() {
		u.JoinDate = dayOf(s.now())
	}
	if err := s.store.AddUser(u); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("user created")
	return &u, nil
}

func (s *RecordService) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.store.UserByID(u.ID); !ok {
		return nil, &domain.NotFoundError{Kind: "user", ID: u.ID}
	}
	if err := s.store.UpdateUser(u); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", u.ID).Msg("user updated")
	return &u, nil
}

func (s *RecordService) CreatePolicy(ctx context.Context, p domain.Policy) (*domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PolicyNumber == "" {
		p.PolicyNumber = recordNumber("POL", now)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now.UTC()
	}
	s.syncPolicyNames(&p)
	if err := s.store.AddPolicy(p); err != nil {
		return nil, err
	}
	s.log.Info().Str("policy_id", p.ID).Str("policy_number", p.PolicyNumber).Msg("policy created")
	return &p, nil
}

func (s *RecordService) UpdatePolicy(ctx context.Context, p domain.Policy) (*domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.store.PolicyByID(p.ID); !ok {
		return nil, &domain.NotFoundError{Kind: "policy", ID: p.ID}
	}
	s.syncPolicyNames(&p)
	if err := s.store.UpdatePolicy(p); err != nil {
		return nil, err
	}
	s.log.Info().Str("policy_id", p.ID).Msg("policy updated")
	return &p, nil
}

// UpdateClaim replaces a claim wholesale. It does not go through the
// workflow; status changes made here are administrative corrections.
func (s *RecordService) UpdateClaim(ctx context.Context, c domain.Claim) (*domain.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.store.ClaimByID(c.ID); !ok {
		return nil, &domain.NotFoundError{Kind: "claim", ID: c.ID}
	}
	if u, ok := s.store.UserByID(c.CustomerID); ok {
		c.CustomerName = u.Name
	}
	if u, ok := s.store.UserByID(c.AgentID); ok {
		c.AgentName = u.Name
	}
	if err := s.store.UpdateClaim(c); err != nil {
		return nil, err
	}
	s.log.Info().Str("claim_id", c.ID).Str("status", string(c.Status)).Msg("claim updated")
	return &c, nil
}

func (s *RecordService) CreatePayment(ctx context.Context, p domain.Payment) (*domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}
	if err := s.store.AddPayment(p); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("payment_id", p.ID).
		Str("policy_id", p.PolicyID).
		Str("type", string(p.Type)).
		Msg("payment recorded")
	return &p, nil
}

func (s *RecordService) syncPolicyNames(p *domain.Policy) {
	if u, ok := s.store.UserByID(p.CustomerID); ok {
		p.CustomerName = u.Name
	}
	if u, ok := s.store.UserByID(p.AgentID); ok {
		p.AgentName = u.Name
	}
}
