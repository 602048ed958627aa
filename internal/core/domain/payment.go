package domain

import "time"

type PaymentType string

const (
	PaymentPremium PaymentType = "premium"
	PaymentClaim   PaymentType = "claim"
)

func (t PaymentType) Valid() bool { return t == PaymentPremium || t == PaymentClaim }

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentCompleted || s == PaymentPending || s == PaymentFailed
}

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCreditCard || m == MethodBankTransfer || m == MethodCheck
}

// Payment is money moving in either direction on a policy: a premium paid by
// the customer or a claim payout.
type Payment struct {
	ID         string        `json:"id" validate:"required"`
	PolicyID   string        `json:"policyId" validate:"required"`
	CustomerID string        `json:"customerId" validate:"required"`
	Amount     float64       `json:"amount" validate:"gt=0"`
	Type       PaymentType   `json:"type" validate:"required,oneof=premium claim"`
	Status     PaymentStatus `json:"status" validate:"required,oneof=completed pending failed"`
	Method     PaymentMethod `json:"method" validate:"required,oneof=credit_card bank_transfer check"`
	Date       time.Time     `json:"date" validate:"required"`
	DueDate    *time.Time    `json:"dueDate,omitempty"`
}
