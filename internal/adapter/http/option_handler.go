package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"safeguard-backend/internal/usecase/option"
)

type OptionHandler struct{ uc *option.Usecase }

func NewOptionHandler(uc *option.Usecase) *OptionHandler { return &OptionHandler{uc: uc} }

// Missing fields are reported by the usecase so the message names the field.
type createOptionReq struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Value        float64 `json:"value"        validate:"gte=0"`
	PremiumRate  float64 `json:"premiumRate"  validate:"gte=0,lte=100,dec2"`
	Description  string  `json:"description"`
	TokenAddress string  `json:"tokenAddress" validate:"omitempty,ethaddr"`
}

func (h *OptionHandler) ListOptions(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OptionHandler) CreateOption(c echo.Context) error {
	var req createOptionReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	opt, err := h.uc.Create(c.Request().Context(), option.CreateOptionInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, opt)
}

func (h *OptionHandler) GetOption(c echo.Context) error {
	opt, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, opt)
}

func (h *OptionHandler) QuoteOption(c echo.Context) error {
	in := option.QuoteInput{OptionID: c.Param("id")}
	if raw := c.QueryParam("coverage"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondError(c, badRequest("coverage must be a number"))
		}
		in.CoveragePercent = v
	}
	if raw := c.QueryParam("months"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, badRequest("months must be an integer"))
		}
		in.Months = v
	}
	q, err := h.uc.Quote(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}
