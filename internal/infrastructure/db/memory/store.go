// Package memory holds the in-process implementations of the domain store
// and the credential registry.
package memory

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/api/metrics"
	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
	"github.com/claimwise/insurance-portal/internal/core/projection"
)

var (
	_ ports.DomainStore = (*Store)(nil)
	_ projection.Reader = (*Store)(nil)
)

// Store implements ports.DomainStore in memory.
//
// Mutations are serialized: at most one is in flight, and every read observes
// the latest completed mutation. Reads hand out copies.
type Store struct {
	mu sync.RWMutex

	users    []domain.User
	policies []domain.Policy
	claims   []domain.Claim
	payments []domain.Payment

	userIdx    map[string]int
	policyIdx  map[string]int
	claimIdx   map[string]int
	paymentIdx map[string]int

	policyNumbers map[string]string // policyNumber → policy id
	claimNumbers  map[string]string // claimNumber → claim id

	loading bool
	errMsg  string

	validate *validator.Validate
	log      zerolog.Logger
}

// NewStore returns an empty Store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		userIdx:       make(map[string]int),
		policyIdx:     make(map[string]int),
		claimIdx:      make(map[string]int),
		paymentIdx:    make(map[string]int),
		policyNumbers: make(map[string]string),
		claimNumbers:  make(map[string]string),
		validate:      newValidator(),
		log:           log,
	}
}

// --- reads ---

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

func (s *Store) Policies() []domain.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Policy, len(s.policies))
	for i, p := range s.policies {
		out[i] = clonePolicy(p)
	}
	return out
}

func (s *Store) Claims() []domain.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Claim, len(s.claims))
	for i, c := range s.claims {
		out[i] = cloneClaim(c)
	}
	return out
}

func (s *Store) Payments() []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Payment, len(s.payments))
	for i, p := range s.payments {
		out[i] = clonePayment(p)
	}
	return out
}

func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.userIdx[id]
	if !ok {
		return domain.User{}, false
	}
	return s.users[i], true
}

func (s *Store) PolicyByID(id string) (domain.Policy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.policyIdx[id]
	if !ok {
		return domain.Policy{}, false
	}
	return clonePolicy(s.policies[i]), true
}

func (s *Store) ClaimByID(id string) (domain.Claim, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.claimIdx[id]
	if !ok {
		return domain.Claim{}, false
	}
	return cloneClaim(s.claims[i]), true
}

// --- adds ---

func (s *Store) AddUser(u domain.User) error {
	if err := checkShape(s.validate, u); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.userIdx[u.ID]; dup {
		return domain.NewValidationError("id", "duplicates existing user %q", u.ID)
	}
	s.userIdx[u.ID] = len(s.users)
	s.users = append(s.users, u)
	s.mutated("user", "add", u.ID)
	return nil
}

func (s *Store) AddPolicy(p domain.Policy) error {
	if err := checkShape(s.validate, p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.policyIdx[p.ID]; dup {
		return domain.NewValidationError("id", "duplicates existing policy %q", p.ID)
	}
	if err := s.checkPolicyRefs(p); err != nil {
		return err
	}
	s.policyIdx[p.ID] = len(s.policies)
	s.policies = append(s.policies, clonePolicy(p))
	s.policyNumbers[p.PolicyNumber] = p.ID
	s.mutated("policy", "add", p.ID)
	return nil
}

func (s *Store) AddClaim(c domain.Claim) error {
	if err := checkShape(s.validate, c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.claimIdx[c.ID]; dup {
		return domain.NewValidationError("id", "duplicates existing claim %q", c.ID)
	}
	if err := s.checkClaimRefs(c); err != nil {
		return err
	}
	s.claimIdx[c.ID] = len(s.claims)
	s.claims = append(s.claims, cloneClaim(c))
	s.claimNumbers[c.ClaimNumber] = c.ID
	s.mutated("claim", "add", c.ID)
	return nil
}

func (s *Store) AddPayment(p domain.Payment) error {
	if err := checkShape(s.validate, p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.paymentIdx[p.ID]; dup {
		return domain.NewValidationError("id", "duplicates existing payment %q", p.ID)
	}
	if _, ok := s.policyIdx[p.PolicyID]; !ok {
		return domain.NewValidationError("policyId", "references unknown policy %q", p.PolicyID)
	}
	if _, ok := s.userIdx[p.CustomerID]; !ok {
		return domain.NewValidationError("customerId", "references unknown user %q", p.CustomerID)
	}
	s.paymentIdx[p.ID] = len(s.payments)
	s.payments = append(s.payments, clonePayment(p))
	s.mutated("payment", "add", p.ID)
	return nil
}

// --- updates ---

// UpdateUser replaces the user with the same id. The role is fixed at
// creation and may not change.
func (s *Store) UpdateUser(u domain.User) error {
	if err := checkShape(s.validate, u); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.userIdx[u.ID]
	if !ok {
		return nil
	}
	if s.users[i].Role != u.Role {
		return domain.NewValidationError("role", "cannot change from %s", s.users[i].Role)
	}
	s.users[i] = u
	s.mutated("user", "update", u.ID)
	return nil
}

func (s *Store) UpdatePolicy(p domain.Policy) error {
	if err := checkShape(s.validate, p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.policyIdx[p.ID]
	if !ok {
		return nil
	}
	if err := s.checkPolicyRefs(p); err != nil {
		return err
	}
	delete(s.policyNumbers, s.policies[i].PolicyNumber)
	s.policies[i] = clonePolicy(p)
	s.policyNumbers[p.PolicyNumber] = p.ID
	s.mutated("policy", "update", p.ID)
	return nil
}

func (s *Store) UpdateClaim(c domain.Claim) error {
	if err := checkShape(s.validate, c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.claimIdx[c.ID]
	if !ok {
		return nil
	}
	if err := s.checkClaimRefs(c); err != nil {
		return err
	}
	delete(s.claimNumbers, s.claims[i].ClaimNumber)
	s.claims[i] = cloneClaim(c)
	s.claimNumbers[c.ClaimNumber] = c.ID
	s.mutated("claim", "update", c.ID)
	return nil
}

// --- status ---

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

func (s *Store) Status() (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading, s.errMsg
}

// --- integrity (callers hold s.mu) ---

func (s *Store) checkPolicyRefs(p domain.Policy) error {
	if err := s.requireRole("customerId", p.CustomerID, domain.RoleCustomer); err != nil {
		return err
	}
	if err := s.requireRole("agentId", p.AgentID, domain.RoleAgent); err != nil {
		return err
	}
	if owner, taken := s.policyNumbers[p.PolicyNumber]; taken && owner != p.ID {
		return domain.NewValidationError("policyNumber", "already used by policy %q", owner)
	}
	return nil
}

func (s *Store) checkClaimRefs(c domain.Claim) error {
	if _, ok := s.policyIdx[c.PolicyID]; !ok {
		return domain.NewValidationError("policyId", "references unknown policy %q", c.PolicyID)
	}
	if err := s.requireRole("customerId", c.CustomerID, domain.RoleCustomer); err != nil {
		return err
	}
	if c.AgentID != "" {
		if err := s.requireRole("agentId", c.AgentID, domain.RoleAgent); err != nil {
			return err
		}
	}
	if owner, taken := s.claimNumbers[c.ClaimNumber]; taken && owner != c.ID {
		return domain.NewValidationError("claimNumber", "already used by claim %q", owner)
	}
	return nil
}

func (s *Store) requireRole(field, userID string, role domain.Role) error {
	i, ok := s.userIdx[userID]
	if !ok {
		return domain.NewValidationError(field, "references unknown user %q", userID)
	}
	if s.users[i].Role != role {
		return domain.NewValidationError(field, "must reference a user with role %s", role)
	}
	return nil
}

func (s *Store) mutated(entity, op, id string) {
	metrics.StoreMutationsTotal.WithLabelValues(entity, op).Inc()
	s.log.Debug().Str("entity", entity).Str("op", op).Str("id", id).Msg("store mutated")
}

// --- copies ---

func clonePolicy(p domain.Policy) domain.Policy {
	p.Documents = append([]domain.Document(nil), p.Documents...)
	return p
}

func cloneClaim(c domain.Claim) domain.Claim {
	c.Documents = append([]domain.Document(nil), c.Documents...)
	c.ProcessedDate = cloneTime(c.ProcessedDate)
	return c
}

func clonePayment(p domain.Payment) domain.Payment {
	p.DueDate = cloneTime(p.DueDate)
	return p
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
