package ports

import "github.com/claimwise/insurance-portal/internal/core/domain"

// StoreReader exposes the four collections in insertion order. Returned
// slices are copies.
type StoreReader interface {
	Users() []domain.User
	Policies() []domain.Policy
	Claims() []domain.Claim
	Payments() []domain.Payment

	UserByID(id string) (domain.User, bool)
	PolicyByID(id string) (domain.Policy, bool)
	ClaimByID(id string) (domain.Claim, bool)
}

// DomainStore is the authoritative owner of the entity collections.
//
// Add* fails with *domain.ValidationError on a malformed record, a dangling
// reference or a duplicate id. Update* validates the record too, but a
// missing id is a silent no-op: callers check existence first.
type DomainStore interface {
	StoreReader

	AddUser(u domain.User) error
	AddPolicy(p domain.Policy) error
	AddClaim(c domain.Claim) error
	AddPayment(p domain.Payment) error

	UpdateUser(u domain.User) error
	UpdatePolicy(p domain.Policy) error
	UpdateClaim(c domain.Claim) error

	SetLoading(loading bool)
	SetError(msg string)
	Status() (loading bool, errMsg string)
}
