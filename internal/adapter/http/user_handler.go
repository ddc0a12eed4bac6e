package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"safeguard-backend/internal/usecase/user"
)

type UserHandler struct{ uc *user.Usecase }

func NewUserHandler(uc *user.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type setRolesReq struct {
	Roles []string `json:"roles"`
}

func (h *UserHandler) GetUser(c echo.Context) error {
	u, err := h.uc.Get(c.Request().Context(), c.Param("address"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) SetRoles(c echo.Context) error {
	var req setRolesReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, badRequest("invalid body"))
	}
	u, err := h.uc.SetRoles(c.Request().Context(), walletOf(c), c.Param("address"), req.Roles)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
