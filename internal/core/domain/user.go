package domain

import "time"

// Role decides which dashboard a user gets and which records they can see.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleAgent         Role = "agent"
	RoleAdministrator Role = "administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleAdministrator:
		return true
	}
	return false
}

// User models an actor of the portal. ID and Role are fixed at creation.
type User struct {
	ID       string    `json:"id" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Name     string    `json:"name" validate:"required"`
	Role     Role      `json:"role" validate:"required,oneof=customer agent administrator"`
	Avatar   string    `json:"avatar,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Address  string    `json:"address,omitempty"`
	JoinDate time.Time `json:"joinDate" validate:"required"`
}

// Credential is a single entry of the login lookup table.
type Credential struct {
	Email        string
	PasswordHash string
	UserID       string
}
