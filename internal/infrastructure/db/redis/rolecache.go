package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
)

const roleTTL = 5 * time.Minute

// RoleCache is a read-through cache of identity roles backed by Redis,
// consulted by the role guard on every protected request. Entries expire
// after roleTTL and are invalidated eagerly when a role or status changes,
// so a revoked elevation is visible within one TTL at worst and immediately
// on the instance that applied it.
// Key format: role:<email>
type RoleCache struct {
	client *redis.Client
	users  ports.UserRepository
}

// NewRoleCache creates a RoleCache over the given client and repository.
func NewRoleCache(client *redis.Client, users ports.UserRepository) *RoleCache {
	return &RoleCache{client: client, users: users}
}

// ResolveRole returns the cached role for email, falling back to the store
// on a miss. Cache write failures are swallowed; the store answer wins.
func (r *RoleCache) ResolveRole(ctx context.Context, email string) (domain.Role, error) {
	val, err := r.client.Get(ctx, r.key(email)).Result()
	if err == nil && val != "" {
		return domain.Role(val), nil
	}
	// Miss or degraded cache: answer from the store.
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	_ = r.client.Set(ctx, r.key(email), string(user.Role), roleTTL).Err()
	return user.Role, nil
}

// Invalidate drops the cached role for email.
func (r *RoleCache) Invalidate(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, r.key(email)).Err(); err != nil {
		return fmt.Errorf("invalidate role cache: %w", err)
	}
	return nil
}

func (r *RoleCache) key(email string) string {
	return "role:" + email
}
