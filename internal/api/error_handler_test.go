package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"missing identity", domain.ErrMissingIdentity, http.StatusBadRequest},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"request not found", domain.ErrRequestNotFound, http.StatusNotFound},
		{"request decided", domain.ErrRequestDecided, http.StatusConflict},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"allocator exhausted", domain.ErrChefIDExhausted, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if body.Error == "" {
				t.Fatalf("empty error envelope")
			}
		})
	}
}

func TestErrorHandler_ForbiddenCarriesHeldRole(t *testing.T) {
	code, body := renderError(t, &domain.ForbiddenError{Required: domain.RoleAdmin, Held: domain.RoleChef})
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if body.Role != string(domain.RoleChef) {
		t.Fatalf("held role missing from envelope: %+v", body)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	_, body := renderError(t, errors.New("connection string leaked"))
	if body.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Error)
	}
}
