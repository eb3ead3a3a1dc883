package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

type stubRoleResolver struct {
	roles map[string]domain.Role
}

func (r *stubRoleResolver) ResolveRole(_ context.Context, email string) (domain.Role, error) {
	role, ok := r.roles[email]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return role, nil
}

func newRoleContext(email string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set(ContextKeyEmail, email)
	}
	return c
}

func TestRequireRole_ExactMatchPasses(t *testing.T) {
	resolver := &stubRoleResolver{roles: map[string]domain.Role{"admin@x.com": domain.RoleAdmin}}
	c := newRoleContext("admin@x.com")

	called := false
	handler := RequireRole(resolver, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRole_AdminDoesNotPassChefGuard(t *testing.T) {
	resolver := &stubRoleResolver{roles: map[string]domain.Role{"admin@x.com": domain.RoleAdmin}}
	c := newRoleContext("admin@x.com")

	handler := RequireRole(resolver, domain.RoleChef)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var fe *domain.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if fe.Required != domain.RoleChef || fe.Held != domain.RoleAdmin {
		t.Fatalf("unexpected diagnostic: required=%s held=%s", fe.Required, fe.Held)
	}
}

func TestRequireRole_ChefDoesNotPassAdminGuard(t *testing.T) {
	resolver := &stubRoleResolver{roles: map[string]domain.Role{"chef@x.com": domain.RoleChef}}
	c := newRoleContext("chef@x.com")

	handler := RequireRole(resolver, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	var fe *domain.ForbiddenError
	if err := handler(c); !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestRequireRole_NoAuthenticatedClaim(t *testing.T) {
	resolver := &stubRoleResolver{}
	c := newRoleContext("")

	handler := RequireRole(resolver, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireRole_UnknownIdentity(t *testing.T) {
	resolver := &stubRoleResolver{}
	c := newRoleContext("ghost@x.com")

	handler := RequireRole(resolver, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var fe *domain.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if fe.Held != "" {
		t.Fatalf("expected empty held role, got %s", fe.Held)
	}
}
