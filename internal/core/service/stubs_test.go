package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository keyed by record id.
type stubUserRepo struct {
	users map[string]*domain.User
	seq   int

	// busyProbes makes the next N chef-ID probes report a holder, simulating
	// allocator collisions.
	busyProbes int
	// roleTakenFailures makes the next N UpdateRole calls fail with
	// ErrChefIDTaken, simulating a lost unique-index race.
	roleTakenFailures int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := cloneUser(user)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByChefID(_ context.Context, chefID string) (*domain.User, error) {
	if r.busyProbes > 0 {
		r.busyProbes--
		return &domain.User{ChefID: chefID}, nil
	}
	for _, u := range r.users {
		if u.ChefID == chefID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role, chefID string) error {
	if r.roleTakenFailures > 0 {
		r.roleTakenFailures--
		return domain.ErrChefIDTaken
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	if chefID != "" {
		u.ChefID = chefID
	}
	return nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id string, status domain.AccountStatus) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) UpdateLastSeen(_ context.Context, email string, at time.Time) error {
	for _, u := range r.users {
		if u.Email == email {
			u.LastSeenAt = at
			return nil
		}
	}
	return nil
}

// stubRequestRepo is an in-memory ports.RequestRepository.
type stubRequestRepo struct {
	requests map[string]*domain.RoleRequest
	seq      int

	updateErr error
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.RoleRequest)}
}

func cloneRequest(req *domain.RoleRequest) *domain.RoleRequest {
	if req == nil {
		return nil
	}
	clone := *req
	return &clone
}

func (r *stubRequestRepo) Insert(_ context.Context, req *domain.RoleRequest) (*domain.RoleRequest, error) {
	copy := cloneRequest(req)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("r%d", r.seq)
	}
	r.requests[copy.ID] = cloneRequest(copy)
	return copy, nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.RoleRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (r *stubRequestRepo) FindPending(_ context.Context, email string, role domain.Role) (*domain.RoleRequest, error) {
	for _, req := range r.requests {
		if req.Email == email && req.RequestedRole == role && req.Status == domain.RequestPending {
			return cloneRequest(req), nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubRequestRepo) UpdateStatus(_ context.Context, id string, status domain.RequestStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.Status = status
	return nil
}

func (r *stubRequestRepo) ListNewestFirst(_ context.Context) ([]*domain.RoleRequest, error) {
	out := make([]*domain.RoleRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, cloneRequest(req))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	return out, nil
}

// stubRoleCache records invalidations.
type stubRoleCache struct {
	invalidated []string
}

func (c *stubRoleCache) Invalidate(_ context.Context, email string) error {
	c.invalidated = append(c.invalidated, email)
	return nil
}
