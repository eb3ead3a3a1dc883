package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
)

// UserHandler exposes identity-record maintenance: the login-time upsert and
// the admin fraud flag.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type saveUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// Save upserts the identity record for an account after login. First sight
// creates an active customer; later calls refresh the last-seen timestamp.
//
// @Summary      Upsert an identity record
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      saveUserRequest  true  "Account identity"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /user [put]
func (h *UserHandler) Save(c echo.Context) error {
	var req saveUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Save(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// MakeFraud flags an account as fraud. The flag is one-way and leaves the
// account's role and chef identifier intact.
//
// @Summary      Flag an account as fraud
// @Tags         users
// @Produce      json
// @Param        id   query     string  true  "Identity record id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/makeFraud [patch]
func (h *UserHandler) MakeFraud(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	user, err := h.users.MarkFraud(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
