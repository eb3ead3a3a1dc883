package ports

import (
	"context"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

// RequestRepository defines persistence operations for role-change requests.
type RequestRepository interface {
	FindByID(ctx context.Context, id string) (*domain.RoleRequest, error)
	// FindPending returns the pending request for (email, role), or
	// domain.ErrRequestNotFound when none exists. Backs the at-most-one-pending
	// invariant checked on submission.
	FindPending(ctx context.Context, email string, role domain.Role) (*domain.RoleRequest, error)
	Insert(ctx context.Context, req *domain.RoleRequest) (*domain.RoleRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error
	// ListNewestFirst returns every request ordered by submission time,
	// most recent first. The ordering drives the admin review queue and is
	// part of the contract, not a display default.
	ListNewestFirst(ctx context.Context) ([]*domain.RoleRequest, error)
}
