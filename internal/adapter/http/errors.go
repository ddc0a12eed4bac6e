package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/domain/errs"
	"safeguard-backend/internal/domain/option"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/token"
	"safeguard-backend/internal/domain/user"
	applog "safeguard-backend/internal/logger"
)

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, policy.ErrNotFound),
		errors.Is(err, policy.ErrNoDocument),
		errors.Is(err, claim.ErrNotFound),
		errors.Is(err, option.ErrNotFound),
		errors.Is(err, token.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, policy.ErrDuplicate),
		errors.Is(err, claim.ErrDuplicate),
		errors.Is(err, option.ErrDuplicate),
		errors.Is(err, token.ErrDuplicate),
		errors.Is(err, claim.ErrInvalidTransition),
		errors.Is(err, claim.ErrStatusChanged),
		errors.Is(err, policy.ErrStatusChanged),
		errors.Is(err, policy.ErrNotActive):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidInput),
		errors.Is(err, claim.ErrReasonRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": ...}. Unmapped errors are logged and
// hidden behind a generic message.
func respondError(c echo.Context, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.JSON(re.code, re.body)
	}
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		applog.CtxError(c.Request().Context(), "request failed", err)
		return c.JSON(code, ErrorResponse{Error: "internal server error"})
	}
	msg := strings.TrimPrefix(err.Error(), errs.ErrInvalidInput.Error()+": ")
	return c.JSON(code, ErrorResponse{Error: msg})
}

// requestError is a malformed request, rejected before reaching a usecase.
type requestError struct {
	code int
	body ErrorResponse
}

func (e *requestError) Error() string { return e.body.Error }

func badRequest(msg string) error {
	return &requestError{code: http.StatusBadRequest, body: ErrorResponse{Error: msg}}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid body")
	}
	if err := c.Validate(req); err != nil {
		return &requestError{code: http.StatusUnprocessableEntity, body: ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		}}
	}
	return nil
}

// walletOf returns the caller's address from X-Wallet-Address.
func walletOf(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderWalletAddress))
}

const HeaderWalletAddress = "X-Wallet-Address"
