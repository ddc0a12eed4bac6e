package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"safeguard-backend/internal/domain/user"
	"safeguard-backend/internal/infrastructure/chain"
	applog "safeguard-backend/internal/logger"
)

// RoleChecker reports whether an address holds any of the roles.
type RoleChecker interface {
	HasRole(ctx context.Context, address string, roles ...user.Role) (bool, error)
}

// RequireRole admits callers whose X-Wallet-Address holds one of roles.
func RequireRole(checker RoleChecker, roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			wallet := strings.TrimSpace(c.Request().Header.Get(HeaderWalletAddress))
			if !chain.IsAddress(wallet) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid " + HeaderWalletAddress})
			}
			ok, err := checker.HasRole(c.Request().Context(), wallet, roles...)
			if err != nil {
				applog.CtxError(c.Request().Context(), "role lookup failed", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
