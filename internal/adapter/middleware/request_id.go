package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	applog "safeguard-backend/internal/logger"
)

// RequestID tags the request context with the client's X-Request-Id, or a
// fresh uuid, and echoes it on the response. The request header itself is
// left untouched for the idempotency check.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if id == "" {
				id = uuid.NewString()
			}
			c.SetRequest(req.WithContext(applog.WithRequestID(req.Context(), id)))
			c.Response().Header().Set(HeaderRequestID, id)
			return next(c)
		}
	}
}
