package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"safeguard-backend/internal/usecase/token"
)

type TokenHandler struct{ uc *token.Usecase }

func NewTokenHandler(uc *token.Usecase) *TokenHandler { return &TokenHandler{uc: uc} }

// Name, symbol and decimals are read from chain when omitted.
type createTokenReq struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Address     string `json:"address"     validate:"required,ethaddr"`
	Decimals    *uint8 `json:"decimals"    validate:"omitempty,lte=36"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (h *TokenHandler) ListTokens(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TokenHandler) CreateToken(c echo.Context) error {
	var req createTokenReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	t, err := h.uc.Create(c.Request().Context(), token.CreateTokenInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Token added successfully",
		"token":   t,
	})
}

func (h *TokenHandler) GetToken(c echo.Context) error {
	t, err := h.uc.GetByIdentifier(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
