// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. Customers and admins share the same record and
// are told apart by Role.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"` // Always stored lower-cased.
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may use the back-office.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Roles returns the roles encoded into access tokens.
func (u *User) Roles() Roles {
	return Roles{u.Role}
}
