package projection

import "github.com/claimwise/insurance-portal/internal/core/domain"

// Ratio divides n by d, returning 0 when d is 0 so the dashboards never show
// a non-finite value.
func Ratio(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}

// CustomerStats is the summary row of the customer dashboard.
type CustomerStats struct {
	TotalPolicies  int     `json:"totalPolicies"`
	ActivePolicies int     `json:"activePolicies"`
	TotalClaims    int     `json:"totalClaims"`
	PendingClaims  int     `json:"pendingClaims"`
	TotalCoverage  float64 `json:"totalCoverage"`
	MonthlyPremium float64 `json:"monthlyPremium"`
}

// CustomerSummary is one row of the agent's "my customers" list.
type CustomerSummary struct {
	Customer domain.User `json:"customer"`
	Policies int         `json:"policies"`
	Claims   int         `json:"claims"`
}

// AgentStats is the summary row of the agent dashboard.
type AgentStats struct {
	TotalCustomers int               `json:"totalCustomers"`
	TotalPolicies  int               `json:"totalPolicies"`
	ActivePolicies int               `json:"activePolicies"`
	TotalClaims    int               `json:"totalClaims"`
	PendingClaims  int               `json:"pendingClaims"`
	TotalPremiums  float64           `json:"totalPremiums"`
	Customers      []CustomerSummary `json:"customers"`
}

// AdminStats covers the whole store.
type AdminStats struct {
	TotalUsers       int                       `json:"totalUsers"`
	TotalCustomers   int                       `json:"totalCustomers"`
	TotalAgents      int                       `json:"totalAgents"`
	TotalPolicies    int                       `json:"totalPolicies"`
	ActivePolicies   int                       `json:"activePolicies"`
	TotalClaims      int                       `json:"totalClaims"`
	PendingClaims    int                       `json:"pendingClaims"`
	ApprovedClaims   int                       `json:"approvedClaims"`
	RejectedClaims   int                       `json:"rejectedClaims"`
	TotalPremiums    float64                   `json:"totalPremiums"`
	TotalCoverage    float64                   `json:"totalCoverage"`
	TotalClaimAmount float64                   `json:"totalClaimAmount"`
	TotalPayments    float64                   `json:"totalPayments"`
	PolicyTypes      map[domain.PolicyType]int `json:"policyTypes"`
	ClaimRatio       float64                   `json:"claimRatio"`
	ApprovalRate     float64                   `json:"approvalRate"`
	ActivePolicyRate float64                   `json:"activePolicyRate"`
}

// policyTotals is the single pass shared by every dashboard.
type policyTotals struct {
	count, active     int
	premium, coverage float64
}

func sumPolicies(ps []domain.Policy) policyTotals {
	var t policyTotals
	for _, p := range ps {
		t.count++
		if p.Status == domain.PolicyActive {
			t.active++
		}
		t.premium += p.Premium
		t.coverage += p.Coverage
	}
	return t
}

type claimTotals struct {
	count, open, approved, rejected int
	amount                          float64
}

func sumClaims(cs []domain.Claim) claimTotals {
	var t claimTotals
	for _, c := range cs {
		t.count++
		switch c.Status {
		case domain.ClaimPending, domain.ClaimProcessing:
			t.open++
		case domain.ClaimApproved, domain.ClaimSettled:
			t.approved++
		case domain.ClaimRejected:
			t.rejected++
		}
		t.amount += c.Amount
	}
	return t
}

// ComputeCustomerStats summarises a customer's scope. The monthly premium is
// the annual premium spread over twelve months.
func ComputeCustomerStats(s Scope) CustomerStats {
	p := sumPolicies(s.Policies)
	c := sumClaims(s.Claims)
	return CustomerStats{
		TotalPolicies:  p.count,
		ActivePolicies: p.active,
		TotalClaims:    c.count,
		PendingClaims:  c.open,
		TotalCoverage:  p.coverage,
		MonthlyPremium: p.premium / 12,
	}
}

// ComputeAgentStats summarises an agent's scope, with per-customer counts
// restricted to the agent's own policies and claims.
func ComputeAgentStats(s Scope) AgentStats {
	p := sumPolicies(s.Policies)
	c := sumClaims(s.Claims)

	policiesBy := make(map[string]int, len(s.Customers))
	for _, pol := range s.Policies {
		policiesBy[pol.CustomerID]++
	}
	claimsBy := make(map[string]int, len(s.Customers))
	for _, cl := range s.Claims {
		claimsBy[cl.CustomerID]++
	}

	customers := make([]CustomerSummary, 0, len(s.Customers))
	for _, u := range s.Customers {
		customers = append(customers, CustomerSummary{
			Customer: u,
			Policies: policiesBy[u.ID],
			Claims:   claimsBy[u.ID],
		})
	}

	return AgentStats{
		TotalCustomers: len(s.Customers),
		TotalPolicies:  p.count,
		ActivePolicies: p.active,
		TotalClaims:    c.count,
		PendingClaims:  c.open,
		TotalPremiums:  p.premium,
		Customers:      customers,
	}
}

// ComputeAdminStats summarises the full snapshot.
func ComputeAdminStats(snap Snapshot) AdminStats {
	p := sumPolicies(snap.Policies)
	c := sumClaims(snap.Claims)

	st := AdminStats{
		TotalUsers:       len(snap.Users),
		TotalPolicies:    p.count,
		ActivePolicies:   p.active,
		TotalClaims:      c.count,
		PendingClaims:    c.open,
		ApprovedClaims:   c.approved,
		RejectedClaims:   c.rejected,
		TotalPremiums:    p.premium,
		TotalCoverage:    p.coverage,
		TotalClaimAmount: c.amount,
		PolicyTypes:      make(map[domain.PolicyType]int),
	}
	for _, u := range snap.Users {
		switch u.Role {
		case domain.RoleCustomer:
			st.TotalCustomers++
		case domain.RoleAgent:
			st.TotalAgents++
		}
	}
	for _, pol := range snap.Policies {
		st.PolicyTypes[pol.Type]++
	}
	for _, pay := range snap.Payments {
		st.TotalPayments += pay.Amount
	}

	st.ClaimRatio = Ratio(c.amount, p.premium)
	st.ApprovalRate = Ratio(float64(c.approved), float64(c.count))
	st.ActivePolicyRate = Ratio(float64(p.active), float64(p.count))
	return st
}
