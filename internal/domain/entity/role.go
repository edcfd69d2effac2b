package entity

import (
	"slices"
	"strings"
)

// Role separates shoppers from back-office staff. An account holds exactly one.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// ParseRole normalizes a stored or claimed role. Anything unknown is a customer
// so a bad row can never grant back-office access.
func ParseRole(s string) Role {
	if role := Role(strings.ToLower(strings.TrimSpace(s))); role.IsValid() {
		return role
	}

	return RoleCustomer
}

// Roles is the role list carried in access token claims.
type Roles []Role

func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

func (rs Roles) ToStrings() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.String())
	}

	return out
}

// RolesFromStrings keeps the recognised roles from token claims and drops the rest.
func RolesFromStrings(ss []string) Roles {
	out := make(Roles, 0, len(ss))
	for _, s := range ss {
		if role := Role(s); role.IsValid() && !out.Contains(role) {
			out = append(out, role)
		}
	}

	return out
}
