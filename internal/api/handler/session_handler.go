package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/api/middleware"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/metrics"
)

// cookieMaxAge matches the token TTL so cookie and token expire together.
const cookieMaxAge = 24 * 60 * 60

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type successResponse struct {
	Success bool `json:"success"`
}

// GetToken issues a session token for an externally verified identity and
// delivers it in the session cookie.
//
// @Summary      Issue a session token
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]any  true  "Identity claim plus optional extra claims"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Router       /getToken [post]
func (h *SessionHandler) GetToken(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	email, _ := body["email"].(string)
	if email == "" {
		return domain.ErrMissingIdentity
	}
	delete(body, "email")

	token, err := h.sessions.Issue(email, body)
	if err != nil {
		return err
	}

	c.SetCookie(sessionCookie(token, cookieMaxAge))
	metrics.SessionsIssuedTotal.Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Logout clears the session cookie.
//
// @Summary      Clear the session cookie
// @Tags         session
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	c.SetCookie(sessionCookie("", -1))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// sessionCookie builds the session cookie. Issuance and clearing must share
// the exact attribute set (HttpOnly, Secure, SameSite=None, Path) or browsers
// silently ignore the clear.
func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   maxAge,
	}
}
