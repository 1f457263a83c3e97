package model

import "time"

// Role grants access to customer or admin operations.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User represents a registered storefront account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the authenticated caller attached to every request.
type Identity struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the caller may perform admin transitions.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
