package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"safeguard-backend/internal/usecase/policy"
)

type PolicyHandler struct{ uc *policy.Usecase }

func NewPolicyHandler(uc *policy.Usecase) *PolicyHandler { return &PolicyHandler{uc: uc} }

type createPolicyReq struct {
	ID             string     `json:"id"`
	Holder         string     `json:"holder"         validate:"required,ethaddr"`
	TokenID        string     `json:"tokenId"        validate:"required"`
	CoverageAmount float64    `json:"coverageAmount" validate:"gt=0"`
	Premium        float64    `json:"premium"        validate:"gte=0"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        time.Time  `json:"endDate"        validate:"required"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
}

func (h *PolicyHandler) ListPolicies(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), policy.ListInput{
		Holder: c.QueryParam("holder"),
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PolicyHandler) CreatePolicy(c echo.Context) error {
	var req createPolicyReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, badRequest("invalid body"))
	}
	// the buyer is the caller unless the body names someone else
	if req.Holder == "" {
		req.Holder = walletOf(c)
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	in := policy.CreatePolicyInput{
		ID:             req.ID,
		Holder:         req.Holder,
		TokenID:        req.TokenID,
		CoverageAmount: req.CoverageAmount,
		Premium:        req.Premium,
		EndDate:        req.EndDate,
		Description:    req.Description,
		Type:           req.Type,
	}
	if req.StartDate != nil {
		in.StartDate = *req.StartDate
	}
	res, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PolicyHandler) GetPolicy(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PolicyHandler) GetPolicyDocument(c echo.Context) error {
	doc, err := h.uc.Document(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}
