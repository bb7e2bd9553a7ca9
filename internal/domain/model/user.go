package model

import "time"

// Role gates access to staff operations.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCashier  Role = "cashier"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a raw string onto a known role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCustomer, RoleCashier, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}

// User represents a registered account of the storefront.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
