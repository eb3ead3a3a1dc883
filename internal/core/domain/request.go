package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a role-change request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Approved and Rejected are terminal.
var validTransitions = map[RequestStatus][]RequestStatus{
	RequestPending: {RequestApproved, RequestRejected},
}

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrMissingIdentity = errors.New("missing identity claim")
	ErrInvalidRole     = errors.New("invalid requested role")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrRequestNotFound = errors.New("role request not found")
	ErrRequestDecided  = errors.New("role request already decided")
	ErrChefIDTaken     = errors.New("chef identifier already taken")
	ErrChefIDExhausted = errors.New("chef identifier space exhausted")
)

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RoleRequest is one elevation request in the admin review queue. Requests
// are decided at most once and are never deleted; decided records remain as
// an audit trail.
type RoleRequest struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	RequestedRole Role          `json:"requested_role"`
	Status        RequestStatus `json:"status"`
	RequestedAt   time.Time     `json:"requested_at"`
}
