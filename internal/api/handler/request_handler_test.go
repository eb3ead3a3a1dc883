package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/api/middleware"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
)

// stubRequestService records calls and returns canned results.
type stubRequestService struct {
	submitResult *ports.SubmitResult
	approved     *domain.RoleRequest
	approveErr   error

	submittedEmail string
	submittedRole  domain.Role
	approvedRole   domain.Role
}

func (s *stubRequestService) Submit(_ context.Context, email string, role domain.Role) (*ports.SubmitResult, error) {
	s.submittedEmail = email
	s.submittedRole = role
	return s.submitResult, nil
}

func (s *stubRequestService) Approve(_ context.Context, _, _ string, role domain.Role) (*domain.RoleRequest, error) {
	s.approvedRole = role
	return s.approved, s.approveErr
}

func (s *stubRequestService) Reject(_ context.Context, _ string) (*domain.RoleRequest, error) {
	return s.approved, s.approveErr
}

func (s *stubRequestService) List(_ context.Context) ([]*domain.RoleRequest, error) {
	return nil, nil
}

func newSubmitContext(e *echo.Echo, body, sessionEmail string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/beAdminOrChef", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sessionEmail != "" {
		c.Set(middleware.ContextKeyEmail, sessionEmail)
	}
	return c, rec
}

func TestRequestHandler_Submit_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	svc := &stubRequestService{submitResult: &ports.SubmitResult{
		Request: &domain.RoleRequest{ID: "r1", Email: "a@x.com", RequestedRole: domain.RoleChef, Status: domain.RequestPending},
	}}
	h := NewRequestHandler(svc)

	c, rec := newSubmitContext(e, `{"email":"a@x.com","requestType":"chef"}`, "a@x.com")
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.submittedEmail != "a@x.com" || svc.submittedRole != domain.RoleChef {
		t.Fatalf("wrong submission: %s %s", svc.submittedEmail, svc.submittedRole)
	}

	var resp submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.AlreadyRequested {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRequestHandler_Submit_DuplicateAcknowledged(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	svc := &stubRequestService{submitResult: &ports.SubmitResult{
		Request:          &domain.RoleRequest{ID: "r1", Status: domain.RequestPending},
		AlreadyRequested: true,
	}}
	h := NewRequestHandler(svc)

	c, rec := newSubmitContext(e, `{"email":"a@x.com","requestType":"chef"}`, "a@x.com")
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("duplicate must stay success-shaped, got %d", rec.Code)
	}

	var resp submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.AlreadyRequested {
		t.Fatalf("duplicate acknowledgment missing: %+v", resp)
	}
}

func TestRequestHandler_Submit_EmailMismatchForbidden(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewRequestHandler(&stubRequestService{})

	c, _ := newSubmitContext(e, `{"email":"other@x.com","requestType":"chef"}`, "a@x.com")

	err := h.Submit(c)
	var fe *domain.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestRequestHandler_Submit_InvalidRequestType(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewRequestHandler(&stubRequestService{})

	c, _ := newSubmitContext(e, `{"email":"a@x.com","requestType":"superuser"}`, "a@x.com")

	err := h.Submit(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRequestHandler_Approve_TypeMapsToRole(t *testing.T) {
	e := echo.New()
	approved := &domain.RoleRequest{ID: "r1", Status: domain.RequestApproved}
	svc := &stubRequestService{approved: approved}
	h := NewRequestHandler(svc)

	req := httptest.NewRequest(http.MethodPatch, "/approve?requestId=r1&userId=u1&type=chef", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.approvedRole != domain.RoleChef {
		t.Fatalf("type=chef should map to chef role, got %s", svc.approvedRole)
	}

	// Any other type elevates to admin.
	req = httptest.NewRequest(http.MethodPatch, "/approve?requestId=r1&userId=u1&type=other", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if svc.approvedRole != domain.RoleAdmin {
		t.Fatalf("type=other should map to admin role, got %s", svc.approvedRole)
	}
}

func TestRequestHandler_Approve_MissingParams(t *testing.T) {
	e := echo.New()
	h := NewRequestHandler(&stubRequestService{})

	req := httptest.NewRequest(http.MethodPatch, "/approve?requestId=r1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Approve(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
