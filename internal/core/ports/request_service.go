package ports

import (
	"context"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

// SubmitResult reports the outcome of a role-change submission.
// AlreadyRequested is true when an identical pending request existed and no
// new record was created; the call still succeeds so clients need no
// special-case handling.
type SubmitResult struct {
	Request          *domain.RoleRequest
	AlreadyRequested bool
}

// RequestService is the role-change workflow: submission, admin decision,
// and the review-queue listing.
type RequestService interface {
	Submit(ctx context.Context, email string, role domain.Role) (*SubmitResult, error)
	// Approve marks the request approved and elevates the identity. For chef
	// targets a unique chef identifier is allocated and assigned; the identity
	// mutation is applied before the request-status write so a failure can
	// never leave an approved request with an unelevated identity.
	Approve(ctx context.Context, requestID, userID string, role domain.Role) (*domain.RoleRequest, error)
	Reject(ctx context.Context, requestID string) (*domain.RoleRequest, error)
	List(ctx context.Context) ([]*domain.RoleRequest, error)
}
