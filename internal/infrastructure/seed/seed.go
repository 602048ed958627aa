// Package seed loads the demo portfolio the portal starts with.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

// CredentialRegistrar stores a login for a user.
type CredentialRegistrar interface {
	RegisterCredential(ctx context.Context, email, password, userID string) error
}

// Login is one demo sign-in.
type Login struct {
	Email    string
	Password string
	UserID   string
}

// Logins are the demo sign-ins shown on the login screen.
var Logins = []Login{
	{Email: "john.doe@email.com", Password: "customer123", UserID: "c1"},
	{Email: "sarah.agent@claimwise.com", Password: "agent123", UserID: "a1"},
	{Email: "admin@claimwise.com", Password: "admin123", UserID: "adm1"},
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

// Users returns the demo users.
func Users() []domain.User {
	return []domain.User{
		{ID: "c1", Email: "john.doe@email.com", Name: "John Doe", Role: domain.RoleCustomer,
			Phone: "+1 (555) 123-4567", Address: "123 Main St, Springfield, IL 62701", JoinDate: day(2023, time.January, 15)},
		{ID: "c2", Email: "emily.chen@email.com", Name: "Emily Chen", Role: domain.RoleCustomer,
			Phone: "+1 (555) 234-5678", Address: "456 Oak Ave, Portland, OR 97205", JoinDate: day(2023, time.March, 22)},
		{ID: "c3", Email: "michael.brown@email.com", Name: "Michael Brown", Role: domain.RoleCustomer,
			Phone: "+1 (555) 345-6789", Address: "789 Pine Rd, Austin, TX 73301", JoinDate: day(2023, time.June, 10)},
		{ID: "a1", Email: "sarah.agent@claimwise.com", Name: "Sarah Wilson", Role: domain.RoleAgent,
			Phone: "+1 (555) 987-6543", JoinDate: day(2022, time.August, 1)},
		{ID: "a2", Email: "david.agent@claimwise.com", Name: "David Martinez", Role: domain.RoleAgent,
			Phone: "+1 (555) 876-5432", JoinDate: day(2022, time.November, 14)},
		{ID: "adm1", Email: "admin@claimwise.com", Name: "Admin User", Role: domain.RoleAdministrator,
			JoinDate: day(2022, time.January, 1)},
	}
}

// Policies returns the demo policies. Names are filled from Users.
func Policies() []domain.Policy {
	return []domain.Policy{
		{ID: "p1", CustomerID: "c1", CustomerName: "John Doe", AgentID: "a1", AgentName: "Sarah Wilson",
			Type: domain.PolicyAuto, PolicyNumber: "POL-2024-001", Premium: 1200, Coverage: 50000,
			Status: domain.PolicyActive, StartDate: day(2024, time.January, 1), EndDate: day(2024, time.December, 31),
			CreatedAt: day(2023, time.December, 15),
			Documents: []domain.Document{{ID: "d1", Name: "Auto Policy Contract.pdf", Type: "application/pdf",
				Size: 245760, UploadDate: day(2023, time.December, 15)}}},
		{ID: "p2", CustomerID: "c1", CustomerName: "John Doe", AgentID: "a1", AgentName: "Sarah Wilson",
			Type: domain.PolicyHome, PolicyNumber: "POL-2024-002", Premium: 2400, Coverage: 350000,
			Status: domain.PolicyActive, StartDate: day(2024, time.February, 1), EndDate: day(2025, time.January, 31),
			CreatedAt: day(2024, time.January, 20)},
		{ID: "p3", CustomerID: "c1", CustomerName: "John Doe", AgentID: "a2", AgentName: "David Martinez",
			Type: domain.PolicyLife, PolicyNumber: "POL-2024-003", Premium: 600, Coverage: 250000,
			Status: domain.PolicyPending, StartDate: day(2024, time.March, 1), EndDate: day(2044, time.February, 28),
			CreatedAt: day(2024, time.February, 25)},
		{ID: "p4", CustomerID: "c2", CustomerName: "Emily Chen", AgentID: "a1", AgentName: "Sarah Wilson",
			Type: domain.PolicyHealth, PolicyNumber: "POL-2024-004", Premium: 3600, Coverage: 100000,
			Status: domain.PolicyActive, StartDate: day(2024, time.January, 1), EndDate: day(2024, time.December, 31),
			CreatedAt: day(2023, time.December, 10)},
		{ID: "p5", CustomerID: "c3", CustomerName: "Michael Brown", AgentID: "a2", AgentName: "David Martinez",
			Type: domain.PolicyBusiness, PolicyNumber: "POL-2023-017", Premium: 5400, Coverage: 1000000,
			Status: domain.PolicyExpired, StartDate: day(2023, time.January, 1), EndDate: day(2023, time.December, 31),
			CreatedAt: day(2022, time.December, 20)},
	}
}

// Claims returns the demo claims, one per workflow status.
func Claims() []domain.Claim {
	return []domain.Claim{
		{ID: "cl1", PolicyID: "p1", CustomerID: "c1", CustomerName: "John Doe", AgentID: "a1", AgentName: "Sarah Wilson",
			Type: domain.PolicyAuto, ClaimNumber: "CLM-2024-001", Amount: 2500, Status: domain.ClaimPending,
			Description: "Rear-end collision at a traffic light, bumper and trunk damage",
			IncidentDate: day(2024, time.March, 2), SubmittedDate: day(2024, time.March, 4),
			Documents: []domain.Document{{ID: "d2", Name: "Accident Photos.zip", Type: "application/zip",
				Size: 5242880, UploadDate: day(2024, time.March, 4)}}},
		{ID: "cl2", PolicyID: "p2", CustomerID: "c1", CustomerName: "John Doe", AgentID: "a1", AgentName: "Sarah Wilson",
			Type: domain.PolicyHome, ClaimNumber: "CLM-2024-002", Amount: 8000, Status: domain.ClaimProcessing,
			Description: "Water damage from burst pipe in basement",
			IncidentDate: day(2024, time.February, 18), SubmittedDate: day(2024, time.February, 19)},
		{ID: "cl3", PolicyID: "p4", CustomerID: "c2", CustomerName: "Emily Chen", AgentID: "a1", AgentName: "Sarah Wilson",
			Type: domain.PolicyHealth, ClaimNumber: "CLM-2024-003", Amount: 1500, Status: domain.ClaimApproved,
			Description: "Emergency room visit and follow-up treatment",
			IncidentDate: day(2024, time.January, 28), SubmittedDate: day(2024, time.February, 1),
			ProcessedDate: ptr(day(2024, time.February, 9))},
		{ID: "cl4", PolicyID: "p5", CustomerID: "c3", CustomerName: "Michael Brown", AgentID: "a2", AgentName: "David Martinez",
			Type: domain.PolicyBusiness, ClaimNumber: "CLM-2023-041", Amount: 12000, Status: domain.ClaimRejected,
			Description: "Inventory loss claimed after policy lapse",
			IncidentDate: day(2023, time.November, 30), SubmittedDate: day(2023, time.December, 5),
			ProcessedDate: ptr(day(2023, time.December, 20))},
		{ID: "cl5", PolicyID: "p4", CustomerID: "c2", CustomerName: "Emily Chen", AgentID: "a1", AgentName: "Sarah Wilson",
			Type: domain.PolicyHealth, ClaimNumber: "CLM-2023-038", Amount: 900, Status: domain.ClaimSettled,
			Description: "Prescription medication reimbursement",
			IncidentDate: day(2023, time.October, 2), SubmittedDate: day(2023, time.October, 3),
			ProcessedDate: ptr(day(2023, time.October, 17))},
	}
}

// Payments returns the demo payments.
func Payments() []domain.Payment {
	return []domain.Payment{
		{ID: "pay1", PolicyID: "p1", CustomerID: "c1", Amount: 100, Type: domain.PaymentPremium,
			Status: domain.PaymentCompleted, Method: domain.MethodCreditCard, Date: day(2024, time.March, 1)},
		{ID: "pay2", PolicyID: "p2", CustomerID: "c1", Amount: 200, Type: domain.PaymentPremium,
			Status: domain.PaymentPending, Method: domain.MethodBankTransfer, Date: day(2024, time.March, 1),
			DueDate: ptr(day(2024, time.March, 15))},
		{ID: "pay3", PolicyID: "p4", CustomerID: "c2", Amount: 1500, Type: domain.PaymentClaim,
			Status: domain.PaymentCompleted, Method: domain.MethodBankTransfer, Date: day(2024, time.February, 12)},
		{ID: "pay4", PolicyID: "p5", CustomerID: "c3", Amount: 450, Type: domain.PaymentPremium,
			Status: domain.PaymentFailed, Method: domain.MethodCheck, Date: day(2023, time.December, 1)},
	}
}

// Load fills store with the demo portfolio and registers the demo logins.
// The store's loading flag is raised for the duration and its error is set
// when a record is rejected.
func Load(ctx context.Context, store ports.DomainStore, creds CredentialRegistrar, log zerolog.Logger) error {
	store.SetLoading(true)
	defer store.SetLoading(false)

	if err := load(ctx, store, creds); err != nil {
		store.SetError(err.Error())
		return err
	}
	store.SetError("")

	log.Info().
		Int("users", len(store.Users())).
		Int("policies", len(store.Policies())).
		Int("claims", len(store.Claims())).
		Int("payments", len(store.Payments())).
		Msg("demo data loaded")
	return nil
}

func load(ctx context.Context, store ports.DomainStore, creds CredentialRegistrar) error {
	for _, u := range Users() {
		if err := store.AddUser(u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, p := range Policies() {
		if err := store.AddPolicy(p); err != nil {
			return fmt.Errorf("seed policy %s: %w", p.ID, err)
		}
	}
	for _, c := range Claims() {
		if err := store.AddClaim(c); err != nil {
			return fmt.Errorf("seed claim %s: %w", c.ID, err)
		}
	}
	for _, p := range Payments() {
		if err := store.AddPayment(p); err != nil {
			return fmt.Errorf("seed payment %s: %w", p.ID, err)
		}
	}
	for _, l := range Logins {
		if err := creds.RegisterCredential(ctx, l.Email, l.Password, l.UserID); err != nil {
			return fmt.Errorf("seed login %s: %w", l.Email, err)
		}
	}
	return nil
}
