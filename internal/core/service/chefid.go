package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/metrics"
)

const (
	chefIDPrefix = "CHEF-"
	chefIDMin    = 1000
	chefIDMax    = 9999

	// maxAllocAttempts bounds the probe loop so keyspace exhaustion surfaces
	// as an observable failure instead of spinning forever.
	maxAllocAttempts = 64
)

// ChefIDAllocator hands out store-unique chef identifiers in the format
// CHEF-#### with a 4-digit suffix. The probe is a fast path only; the unique
// index on the chef_id field remains the authoritative guard under
// concurrent allocation.
type ChefIDAllocator struct {
	users ports.UserRepository
}

func NewChefIDAllocator(users ports.UserRepository) *ChefIDAllocator {
	return &ChefIDAllocator{users: users}
}

// Allocate draws candidates until the store shows no holder, up to
// maxAllocAttempts, then fails with domain.ErrChefIDExhausted.
func (a *ChefIDAllocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxAllocAttempts; attempt++ {
		candidate, err := randomChefID()
		if err != nil {
			return "", err
		}

		_, err = a.users.FindByChefID(ctx, candidate)
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.ChefIDAllocationAttempts.Observe(float64(attempt))
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("probe chef id: %w", err)
		}
		// candidate is held, draw again
	}
	return "", domain.ErrChefIDExhausted
}

// randomChefID returns a uniform draw from CHEF-1000..CHEF-9999.
func randomChefID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(chefIDMax-chefIDMin+1))
	if err != nil {
		return "", fmt.Errorf("draw chef id: %w", err)
	}
	return fmt.Sprintf("%s%d", chefIDPrefix, chefIDMin+n.Int64()), nil
}
