package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	// Role is populated on 403 responses when the caller's held role is
	// known, as a diagnostic for the client.
	Role string `json:"role,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// Guards and handlers return bare domain errors; this is the single place
// rejections are translated.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)
		_ = c.JSON(resp.code, resp.body)
	}
}

type resolvedError struct {
	code int
	body errorResponse
}

func resolveError(err error, log zerolog.Logger, c echo.Context) resolvedError {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return resolvedError{he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}}
	}

	// Role mismatches carry the held role for diagnostics.
	var fe *domain.ForbiddenError
	if errors.As(err, &fe) {
		return resolvedError{http.StatusForbidden, errorResponse{Error: "access forbidden", Role: string(fe.Held)}}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return resolvedError{http.StatusUnauthorized, errorResponse{Error: "authentication required"}}
	case errors.Is(err, domain.ErrMissingIdentity):
		return resolvedError{http.StatusBadRequest, errorResponse{Error: "missing identity claim"}}
	case errors.Is(err, domain.ErrInvalidRole):
		return resolvedError{http.StatusBadRequest, errorResponse{Error: "invalid requested role"}}
	case errors.Is(err, domain.ErrUserNotFound):
		return resolvedError{http.StatusNotFound, errorResponse{Error: "user not found"}}
	case errors.Is(err, domain.ErrRequestNotFound):
		return resolvedError{http.StatusNotFound, errorResponse{Error: "role request not found"}}
	case errors.Is(err, domain.ErrRequestDecided):
		return resolvedError{http.StatusConflict, errorResponse{Error: "role request already decided"}}
	case errors.Is(err, domain.ErrUserExists):
		return resolvedError{http.StatusConflict, errorResponse{Error: "user already exists"}}
	case errors.Is(err, domain.ErrChefIDExhausted):
		return resolvedError{http.StatusServiceUnavailable, errorResponse{Error: "chef identifier space exhausted"}}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return resolvedError{http.StatusInternalServerError, errorResponse{Error: "internal server error"}}
}
