package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the capability level held by an account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleChef     Role = "chef"
	RoleAdmin    Role = "admin"
)

// AccountStatus represents the standing of an account.
type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusFraud  AccountStatus = "fraud"
)

// NormalizeRole maps an inbound role string to its canonical lowercase form.
// The second return value is false for unknown roles.
func NormalizeRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleChef:
		return RoleChef, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// User is the identity record for one marketplace account. Email is the
// identity claim embedded in session tokens and the primary lookup key.
// ChefID is set exactly once, when the account is elevated to chef, and is
// unique across the store.
type User struct {
	ID         string        `json:"id"`
	Email      string        `json:"email"`
	Name       string        `json:"name,omitempty"`
	Role       Role          `json:"role"`
	Status     AccountStatus `json:"status"`
	ChefID     string        `json:"chef_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	LastSeenAt time.Time     `json:"last_seen_at"`
}

// ForbiddenError is returned when an authenticated identity holds a role
// other than the one a route requires. Held is surfaced to the caller as a
// diagnostic; it may be empty when no identity record exists.
type ForbiddenError struct {
	Required Role
	Held     Role
}

func (e *ForbiddenError) Error() string {
	if e.Held == "" {
		return fmt.Sprintf("requires role %q", e.Required)
	}
	return fmt.Sprintf("requires role %q, holds %q", e.Required, e.Held)
}
