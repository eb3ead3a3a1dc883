package ports

import (
	"context"
	"time"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

// UserRepository defines persistence operations for identity records.
// Updates are deliberately narrow: each mutation touches only the fields it
// names, so a status change can never clobber a role or chef identifier.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByChefID is the collision probe used by the chef-ID allocator.
	FindByChefID(ctx context.Context, chefID string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRole sets the role and, when chefID is non-empty, the chef
	// identifier. A unique-index violation on the chef identifier is reported
	// as domain.ErrChefIDTaken so callers can re-enter allocation.
	UpdateRole(ctx context.Context, id string, role domain.Role, chefID string) error
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) error
	UpdateLastSeen(ctx context.Context, email string, at time.Time) error
}
