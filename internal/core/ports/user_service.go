package ports

import (
	"context"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

// UserService manages identity records outside the role-change workflow.
type UserService interface {
	// Save upserts the identity record for email: first sight creates an
	// active customer, a revisit refreshes the last-seen timestamp.
	Save(ctx context.Context, email, name string) (*domain.User, error)
	// MarkFraud flips the account status to fraud. One-way; role and chef
	// identifier are left untouched.
	MarkFraud(ctx context.Context, id string) (*domain.User, error)
	TouchLastSeen(ctx context.Context, email string) error
}
