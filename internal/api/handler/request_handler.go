package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/api/middleware"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
)

// RequestHandler exposes the role-change workflow over HTTP.
type RequestHandler struct {
	requests ports.RequestService
}

func NewRequestHandler(requests ports.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

type submitRequest struct {
	ID          string `json:"id"`
	Email       string `json:"email" validate:"required,email"`
	RequestType string `json:"requestType" validate:"required,oneof=chef admin"`
}

type submitResponse struct {
	Success          bool                `json:"success"`
	AlreadyRequested bool                `json:"already_requested,omitempty"`
	Request          *domain.RoleRequest `json:"request"`
}

// Submit files an elevation request for the authenticated identity.
// The body email must match the session claim; acting on another identity's
// behalf is forbidden. Resubmitting while a request is pending returns a
// success-shaped duplicate acknowledgment.
//
// @Summary      Submit a role-change request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      submitRequest  true  "Requested elevation"
// @Success      200   {object}  submitResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /beAdminOrChef [post]
func (h *RequestHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email, err := middleware.AuthenticatedEmail(c)
	if err != nil {
		return err
	}
	if req.Email != email {
		return &domain.ForbiddenError{}
	}

	role, ok := domain.NormalizeRole(req.RequestType)
	if !ok {
		return domain.ErrInvalidRole
	}

	result, err := h.requests.Submit(c.Request().Context(), email, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, submitResponse{
		Success:          true,
		AlreadyRequested: result.AlreadyRequested,
		Request:          result.Request,
	})
}

// List returns the admin review queue, newest submission first.
//
// @Summary      List role-change requests
// @Tags         requests
// @Produce      json
// @Success      200  {array}   domain.RoleRequest
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /request [get]
func (h *RequestHandler) List(c echo.Context) error {
	requests, err := h.requests.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Approve grants a pending request. type=chef elevates to chef with a newly
// allocated chef identifier; any other type elevates to admin.
//
// @Summary      Approve a role-change request
// @Tags         requests
// @Produce      json
// @Param        requestId  query     string  true   "Request id"
// @Param        userId     query     string  true   "Identity record id"
// @Param        type       query     string  false  "chef or other"
// @Success      200  {object}  domain.RoleRequest
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /approve [patch]
func (h *RequestHandler) Approve(c echo.Context) error {
	requestID := c.QueryParam("requestId")
	userID := c.QueryParam("userId")
	if requestID == "" || userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requestId and userId are required")
	}

	role := domain.RoleAdmin
	if c.QueryParam("type") == "chef" {
		role = domain.RoleChef
	}

	updated, err := h.requests.Approve(c.Request().Context(), requestID, userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Reject declines a pending request without touching the identity.
//
// @Summary      Reject a role-change request
// @Tags         requests
// @Produce      json
// @Param        requestId  query     string  true  "Request id"
// @Success      200  {object}  domain.RoleRequest
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /reject [patch]
func (h *RequestHandler) Reject(c echo.Context) error {
	requestID := c.QueryParam("requestId")
	if requestID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requestId is required")
	}

	updated, err := h.requests.Reject(c.Request().Context(), requestID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
