package projection

import (
	"strings"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// SelectAll is the categorical selector that disables filtering.
const SelectAll = "all"

// FilterPolicies keeps policies whose policyNumber, customerName or type
// contains term (case-insensitive) and whose status or type equals selector.
func FilterPolicies(in []domain.Policy, term, selector string) []domain.Policy {
	return where(in, func(p domain.Policy) bool {
		return matchesText(term, p.PolicyNumber, p.CustomerName, string(p.Type)) &&
			matchesSelector(selector, string(p.Status), string(p.Type))
	})
}

// FilterClaims keeps claims whose claimNumber, customerName or description
// contains term and whose status equals selector.
func FilterClaims(in []domain.Claim, term, selector string) []domain.Claim {
	return where(in, func(c domain.Claim) bool {
		return matchesText(term, c.ClaimNumber, c.CustomerName, c.Description) &&
			matchesSelector(selector, string(c.Status))
	})
}

// FilterUsers keeps users whose name or email contains term and whose role
// equals selector.
func FilterUsers(in []domain.User, term, selector string) []domain.User {
	return where(in, func(u domain.User) bool {
		return matchesText(term, u.Name, u.Email) &&
			matchesSelector(selector, string(u.Role))
	})
}

// FilterPayments narrows payments by selector against status, type or
// method. Payments carry no free-text fields.
func FilterPayments(in []domain.Payment, selector string) []domain.Payment {
	return where(in, func(p domain.Payment) bool {
		return matchesSelector(selector, string(p.Status), string(p.Type), string(p.Method))
	})
}

func matchesText(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// matchesSelector treats an empty selector like SelectAll.
func matchesSelector(selector string, fields ...string) bool {
	if selector == "" || selector == SelectAll {
		return true
	}
	for _, f := range fields {
		if f == selector {
			return true
		}
	}
	return false
}
