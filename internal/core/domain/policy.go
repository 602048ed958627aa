package domain

import "time"

// PolicyType is the line of business a policy covers. Claims inherit it.
type PolicyType string

const (
	PolicyLife     PolicyType = "life"
	PolicyHealth   PolicyType = "health"
	PolicyAuto     PolicyType = "auto"
	PolicyHome     PolicyType = "home"
	PolicyBusiness PolicyType = "business"
)

// PolicyTypes lists every policy type in display order.
var PolicyTypes = []PolicyType{PolicyLife, PolicyHealth, PolicyAuto, PolicyHome, PolicyBusiness}

func (t PolicyType) Valid() bool {
	switch t {
	case PolicyLife, PolicyHealth, PolicyAuto, PolicyHome, PolicyBusiness:
		return true
	}
	return false
}

// PolicyStatus is the lifecycle state of a policy.
type PolicyStatus string

const (
	PolicyActive   PolicyStatus = "active"
	PolicyInactive PolicyStatus = "inactive"
	PolicyPending  PolicyStatus = "pending"
	PolicyExpired  PolicyStatus = "expired"
)

func (s PolicyStatus) Valid() bool {
	switch s {
	case PolicyActive, PolicyInactive, PolicyPending, PolicyExpired:
		return true
	}
	return false
}

// Document is a file attached to a policy or a claim.
type Document struct {
	ID         string    `json:"id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Type       string    `json:"type" validate:"required"`
	Size       int64     `json:"size" validate:"gte=0"`
	UploadDate time.Time `json:"uploadDate" validate:"required"`
	URL        string    `json:"url,omitempty"`
}

// Policy is an insurance contract between a customer and the carrier,
// serviced by an agent.
//
// CustomerName and AgentName are copies of the referenced users' names taken
// at write time. They are not kept in sync and may be stale.
type Policy struct {
	ID           string       `json:"id" validate:"required"`
	CustomerID   string       `json:"customerId" validate:"required"`
	CustomerName string       `json:"customerName,omitempty"`
	AgentID      string       `json:"agentId" validate:"required"`
	AgentName    string       `json:"agentName,omitempty"`
	Type         PolicyType   `json:"type" validate:"required,oneof=life health auto home business"`
	PolicyNumber string       `json:"policyNumber" validate:"required"`
	Premium      float64      `json:"premium" validate:"gt=0"`
	Coverage     float64      `json:"coverage" validate:"gt=0"`
	Status       PolicyStatus `json:"status" validate:"required,oneof=active inactive pending expired"`
	StartDate    time.Time    `json:"startDate" validate:"required"`
	EndDate      time.Time    `json:"endDate" validate:"required,gtfield=StartDate"`
	CreatedAt    time.Time    `json:"createdAt" validate:"required"`
	Documents    []Document   `json:"documents,omitempty" validate:"omitempty,dive"`
}
