package domain

import "time"

// ClaimStatus represents the workflow state of a claim.
type ClaimStatus string

const (
	ClaimPending    ClaimStatus = "pending"
	ClaimProcessing ClaimStatus = "processing"
	ClaimApproved   ClaimStatus = "approved"
	ClaimRejected   ClaimStatus = "rejected"
	ClaimSettled    ClaimStatus = "settled"
)

// validTransitions defines the agent actions the workflow exposes. Any other
// status is a static state with no outgoing transition.
var validTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimPending:    {ClaimApproved, ClaimRejected},
	ClaimProcessing: {ClaimSettled},
}

// Valid reports whether s is one of the known claim statuses.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimPending, ClaimProcessing, ClaimApproved, ClaimRejected, ClaimSettled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Open reports whether the claim still waits on an agent.
func (s ClaimStatus) Open() bool {
	return s == ClaimPending || s == ClaimProcessing
}

// Claim is a customer's request for payout against a policy.
type Claim struct {
	ID            string      `json:"id" validate:"required"`
	PolicyID      string      `json:"policyId" validate:"required"`
	CustomerID    string      `json:"customerId" validate:"required"`
	CustomerName  string      `json:"customerName,omitempty"`
	AgentID       string      `json:"agentId,omitempty"`
	AgentName     string      `json:"agentName,omitempty"`
	Type          PolicyType  `json:"type" validate:"required,oneof=life health auto home business"`
	ClaimNumber   string      `json:"claimNumber" validate:"required"`
	Amount        float64     `json:"amount" validate:"gt=0"`
	Status        ClaimStatus `json:"status" validate:"required,oneof=pending processing approved rejected settled"`
	Description   string      `json:"description" validate:"required"`
	IncidentDate  time.Time   `json:"incidentDate" validate:"required,ltefield=SubmittedDate"`
	SubmittedDate time.Time   `json:"submittedDate" validate:"required"`
	ProcessedDate *time.Time  `json:"processedDate,omitempty"`
	Documents     []Document  `json:"documents,omitempty" validate:"omitempty,dive"`
}
