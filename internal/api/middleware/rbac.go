package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

// RoleResolver resolves the role currently held by an authenticated identity.
// The production implementation is the Redis-cached resolver over the Mongo
// user repository.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (domain.Role, error)
}

// RequireRole is the role guard. It loads the identity record behind the
// authenticated claim and demands an exact role match: admin does not
// implicitly pass a chef-only route, nor the reverse. Mismatches fail with a
// ForbiddenError carrying the held role as a diagnostic. The guard is a pure
// predicate; it never writes.
func RequireRole(roles RoleResolver, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, err := AuthenticatedEmail(c)
			if err != nil {
				return err
			}

			held, err := roles.ResolveRole(c.Request().Context(), email)
			if errors.Is(err, domain.ErrUserNotFound) {
				// Valid token, no identity record behind it.
				return &domain.ForbiddenError{Required: required}
			}
			if err != nil {
				return err
			}

			if held != required {
				return &domain.ForbiddenError{Required: required, Held: held}
			}

			return next(c)
		}
	}
}
