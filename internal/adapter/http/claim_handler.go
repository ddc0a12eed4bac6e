package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"safeguard-backend/internal/infrastructure/chain"
	"safeguard-backend/internal/usecase/claim"
)

type ClaimHandler struct{ uc *claim.Usecase }

func NewClaimHandler(uc *claim.Usecase) *ClaimHandler { return &ClaimHandler{uc: uc} }

type createClaimReq struct {
	ID          string  `json:"id"`
	PolicyID    string  `json:"policyId"    validate:"required"`
	Claimant    string  `json:"claimant"    validate:"omitempty,ethaddr"`
	Amount      float64 `json:"amount"      validate:"gt=0"`
	Description string  `json:"description"`
	// Evidence is either a CID or any JSON document to pin.
	Evidence any `json:"evidence"`
	// EvidenceHash references evidence pinned beforehand.
	EvidenceHash string `json:"evidenceHash" validate:"omitempty,cid"`
}

type reviewClaimReq struct {
	Decision string `json:"decision" validate:"required,oneof=underReview approve reject"`
	Reason   string `json:"reason"`
}

func (h *ClaimHandler) ListClaims(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), claim.ListInput{
		PolicyID: c.QueryParam("policyId"),
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClaimHandler) CreateClaim(c echo.Context) error {
	var req createClaimReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.EvidenceHash != "" {
		if req.Evidence != nil {
			return respondError(c, badRequest("send either evidence or evidenceHash, not both"))
		}
		req.Evidence = req.EvidenceHash
	}
	claimant := req.Claimant
	if claimant == "" {
		claimant = walletOf(c)
		if claimant != "" && !chain.IsAddress(claimant) {
			return respondError(c, badRequest("invalid "+HeaderWalletAddress+" header"))
		}
	}
	res, err := h.uc.Create(c.Request().Context(), claim.CreateClaimInput{
		ID:          req.ID,
		PolicyID:    req.PolicyID,
		Claimant:    claimant,
		Amount:      req.Amount,
		Description: req.Description,
		Evidence:    req.Evidence,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *ClaimHandler) GetClaim(c echo.Context) error {
	cl, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *ClaimHandler) ReviewClaim(c echo.Context) error {
	var req reviewClaimReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	cl, err := h.uc.Review(c.Request().Context(), claim.ReviewInput{
		ClaimID:  c.Param("id"),
		Decision: req.Decision,
		Reviewer: walletOf(c),
		Reason:   req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *ClaimHandler) PayClaim(c echo.Context) error {
	cl, err := h.uc.Pay(c.Request().Context(), c.Param("id"), walletOf(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}
