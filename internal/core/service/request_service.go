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

// RoleCache abstracts the cached role lookups (Redis) that must be dropped
// whenever an identity's role or status changes.
type RoleCache interface {
	Invalidate(ctx context.Context, email string) error
}

// assignRetries bounds re-allocation when the chef_id unique index rejects a
// write that won the probe but lost the insert race.
const assignRetries = 3

type requestService struct {
	requests ports.RequestRepository
	users    ports.UserRepository
	alloc    *ChefIDAllocator
	cache    RoleCache
	log      zerolog.Logger
}

// NewRequestService returns a RequestService implementation.
func NewRequestService(
	requests ports.RequestRepository,
	users ports.UserRepository,
	alloc *ChefIDAllocator,
	cache RoleCache,
	log zerolog.Logger,
) ports.RequestService {
	return &requestService{
		requests: requests,
		users:    users,
		alloc:    alloc,
		cache:    cache,
		log:      log,
	}
}

// Submit records a pending elevation request. A second submission for the
// same (email, role) while one is pending is acknowledged without creating a
// second record.
func (s *requestService) Submit(ctx context.Context, email string, role domain.Role) (*ports.SubmitResult, error) {
	if role != domain.RoleChef && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.requests.FindPending(ctx, email, role)
	if err == nil {
		s.log.Info().Str("email", email).Str("role", string(role)).Msg("duplicate role request suppressed")
		metrics.RoleRequestsTotal.WithLabelValues(string(role), "duplicate").Inc()
		return &ports.SubmitResult{Request: existing, AlreadyRequested: true}, nil
	}
	if !errors.Is(err, domain.ErrRequestNotFound) {
		return nil, fmt.Errorf("check pending request: %w", err)
	}

	created, err := s.requests.Insert(ctx, &domain.RoleRequest{
		Email:         email,
		RequestedRole: role,
		Status:        domain.RequestPending,
		RequestedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert role request: %w", err)
	}

	s.log.Info().Str("email", email).Str("role", string(role)).Str("request_id", created.ID).Msg("role request submitted")
	metrics.RoleRequestsTotal.WithLabelValues(string(role), "created").Inc()
	return &ports.SubmitResult{Request: created}, nil
}

// Approve elevates the identity, then marks the request approved. The order
// matters: if the status write failed first, the request could read approved
// while the identity stayed unelevated. The reverse failure leaves a pending
// request over an already-elevated identity, which a second approval resolves.
func (s *requestService) Approve(ctx context.Context, requestID, userID string, role domain.Role) (*domain.RoleRequest, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(domain.RequestApproved) {
		return nil, domain.ErrRequestDecided
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if role == domain.RoleChef {
		if err := s.assignChefRole(ctx, user); err != nil {
			return nil, err
		}
	} else {
		if err := s.users.UpdateRole(ctx, user.ID, domain.RoleAdmin, ""); err != nil {
			return nil, fmt.Errorf("update role: %w", err)
		}
	}

	if err := s.cache.Invalidate(ctx, user.Email); err != nil {
		s.log.Warn().Err(err).Str("email", user.Email).Msg("role cache invalidation failed")
	}

	if err := s.requests.UpdateStatus(ctx, req.ID, domain.RequestApproved); err != nil {
		// Identity already elevated; request stays pending for a retried approval.
		s.log.Error().Err(err).Str("request_id", req.ID).Msg("role applied but request left pending")
		return nil, fmt.Errorf("mark request approved: %w", err)
	}

	req.Status = domain.RequestApproved
	s.log.Info().Str("request_id", req.ID).Str("email", user.Email).Str("role", string(role)).Msg("role request approved")
	metrics.RoleRequestDecisionsTotal.WithLabelValues("approved").Inc()
	return req, nil
}

// assignChefRole allocates a chef identifier and writes the elevation. A
// duplicate-key rejection means another approval persisted the same
// identifier between our probe and our write; re-enter allocation.
func (s *requestService) assignChefRole(ctx context.Context, user *domain.User) error {
	// A chef identifier is assigned exactly once. An identity that already
	// holds one (a chef resubmitting, or an approval retried after a failed
	// status write) keeps it; allocating again would release the old value
	// back into the keyspace.
	if user.ChefID != "" {
		if err := s.users.UpdateRole(ctx, user.ID, domain.RoleChef, user.ChefID); err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		return nil
	}

	for range assignRetries {
		chefID, err := s.alloc.Allocate(ctx)
		if err != nil {
			return err
		}

		err = s.users.UpdateRole(ctx, user.ID, domain.RoleChef, chefID)
		if errors.Is(err, domain.ErrChefIDTaken) {
			s.log.Warn().Str("chef_id", chefID).Str("email", user.Email).Msg("lost chef id race, reallocating")
			continue
		}
		if err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		return nil
	}
	return domain.ErrChefIDExhausted
}

// Reject marks a pending request rejected. No identity side effects.
func (s *requestService) Reject(ctx context.Context, requestID string) (*domain.RoleRequest, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(domain.RequestRejected) {
		return nil, domain.ErrRequestDecided
	}

	if err := s.requests.UpdateStatus(ctx, req.ID, domain.RequestRejected); err != nil {
		return nil, fmt.Errorf("mark request rejected: %w", err)
	}

	req.Status = domain.RequestRejected
	s.log.Info().Str("request_id", req.ID).Str("email", req.Email).Msg("role request rejected")
	metrics.RoleRequestDecisionsTotal.WithLabelValues("rejected").Inc()
	return req, nil
}

// List returns the full review queue, newest submission first.
func (s *requestService) List(ctx context.Context) ([]*domain.RoleRequest, error) {
	return s.requests.ListNewestFirst(ctx)
}
