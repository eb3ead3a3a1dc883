package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/metrics"
)

type userService struct {
	users ports.UserRepository
	cache RoleCache
	log   zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository, cache RoleCache, log zerolog.Logger) ports.UserService {
	return &userService{users: users, cache: cache, log: log}
}

// Save upserts the identity record for email. New accounts start as active
// customers; existing accounts only get their last-seen timestamp refreshed.
func (s *userService) Save(ctx context.Context, email, name string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrMissingIdentity
	}

	now := time.Now().UTC()

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if err := s.users.UpdateLastSeen(ctx, email, now); err != nil {
			return nil, fmt.Errorf("update last seen: %w", err)
		}
		existing.LastSeenAt = now
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	created, err := s.users.Insert(ctx, &domain.User{
		Email:      email,
		Name:       name,
		Role:       domain.RoleCustomer,
		Status:     domain.StatusActive,
		CreatedAt:  now,
		LastSeenAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.log.Info().Str("email", email).Msg("user created")
	return created, nil
}

// MarkFraud sets the account status to fraud. The update touches status only;
// role and chef identifier survive the flag.
func (s *userService) MarkFraud(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateStatus(ctx, user.ID, domain.StatusFraud); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	if err := s.cache.Invalidate(ctx, user.Email); err != nil {
		s.log.Warn().Err(err).Str("email", user.Email).Msg("role cache invalidation failed")
	}

	user.Status = domain.StatusFraud
	s.log.Info().Str("email", user.Email).Msg("account flagged as fraud")
	metrics.FraudFlagsTotal.Inc()
	return user, nil
}

// TouchLastSeen refreshes the last-seen timestamp. Called by the background
// dispatcher, never on the request path.
func (s *userService) TouchLastSeen(ctx context.Context, email string) error {
	return s.users.UpdateLastSeen(ctx, email, time.Now().UTC())
}
