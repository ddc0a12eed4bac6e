package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeguard-backend/internal/domain/user"
	applog "safeguard-backend/internal/logger"
)

func TestRequestID_EchoesClientID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	var seen string
	e.GET("/x", func(c echo.Context) error {
		seen = applog.RequestID(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "client-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", rec.Header().Get(HeaderRequestID))
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	var seen, header string
	e.POST("/x", func(c echo.Context) error {
		seen = applog.RequestID(c.Request().Context())
		header = c.Request().Header.Get(HeaderRequestID)
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))

	require.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	assert.Empty(t, header, "request header must stay empty so idempotency still requires it")
}

type checkerFunc func(ctx context.Context, address string, roles ...user.Role) (bool, error)

func (f checkerFunc) HasRole(ctx context.Context, address string, roles ...user.Role) (bool, error) {
	return f(ctx, address, roles...)
}

func TestRequireRole(t *testing.T) {
	verifier := "0x" + strings.Repeat("a", 40)
	checker := checkerFunc(func(_ context.Context, address string, roles ...user.Role) (bool, error) {
		if address == "0x"+strings.Repeat("e", 40) {
			return false, errors.New("db down")
		}
		return address == verifier && len(roles) == 1 && roles[0] == user.RoleVerifier, nil
	})

	e := echo.New()
	e.POST("/review", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
		RequireRole(checker, user.RoleVerifier))

	tests := []struct {
		wallet string
		want   int
	}{
		{verifier, http.StatusNoContent},
		{"0x" + strings.Repeat("b", 40), http.StatusForbidden},
		{"", http.StatusUnauthorized},
		{"nobody", http.StatusUnauthorized},
		{"0x" + strings.Repeat("e", 40), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/review", nil)
		if tt.wallet != "" {
			req.Header.Set(HeaderWalletAddress, tt.wallet)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, tt.wallet)
	}
}
