package account

import (
	"slices"
	"time"
)

// Role decides what an account may do in the portal.
type Role string

const (
	RoleRepresentative Role = "REPRESENTATIVE"
	RoleAdmin          Role = "ADMIN"
)

// Categories are the business types a representative may register under.
var Categories = []string{
	"Salão de Beleza",
	"Barbearia",
	"Estética",
	"Revendedor Individual",
	"Distribuidor Regional",
	"E-commerce",
}

// Account is a person who signs in to the portal.
// @Description Account information
// @Description with id, email, name, role, category and the business units it may bill to
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Category     string    `json:"category,omitempty"`
	UnitIDs      []string  `json:"unit_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Account) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccess reports whether the account may bill to the unit. Admins may bill to every unit.
func (a *Account) CanAccess(unitID string) bool {
	return a.IsAdmin() || slices.Contains(a.UnitIDs, unitID)
}

// Pending reports whether a representative is still waiting for an administrator to assign units.
func (a *Account) Pending() bool {
	return !a.IsAdmin() && len(a.UnitIDs) == 0
}

// Clone returns a deep copy.
func (a *Account) Clone() *Account {
	c := *a
	c.UnitIDs = slices.Clone(a.UnitIDs)
	if c.UnitIDs == nil {
		c.UnitIDs = []string{}
	}
	return &c
}

// RegisterRequest is the self-service sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpsertRequest is the administrator payload for creating or editing an account.
// An empty Password keeps the stored one.
type UpsertRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password,omitempty"`
	Role     Role     `json:"role"`
	Category string   `json:"category,omitempty"`
	UnitIDs  []string `json:"unit_ids"`
}

// ListFilter selects accounts for the backoffice.
type ListFilter string

const (
	FilterAll     ListFilter = ""
	FilterPending ListFilter = "pending"
	FilterActive  ListFilter = "active"
)
