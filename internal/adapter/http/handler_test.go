package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type healthBody struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks"`
}

func runHealth(t *testing.T, h *Handler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestHealth_NoChecks(t *testing.T) {
	start := time.Now().UTC()
	rec := runHealth(t, NewHandler(nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}
	body := decode[healthBody](t, rec)
	if body.Status != "ok" || body.Checks != nil {
		t.Fatalf("unexpected body %+v", body)
	}

	parsed, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil {
		t.Fatalf("time not RFC3339Nano: %v (value=%q)", err, body.Time)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", parsed.Location())
	}
	if parsed.Before(start.Add(-2*time.Second)) || parsed.After(time.Now().UTC().Add(2*time.Second)) {
		t.Fatalf("time not within expected window: %v", parsed)
	}
}

func TestHealth_Checks(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	rec := runHealth(t, NewHandler(map[string]Check{"store": ok, "redis": ok}))
	if rec.Code != http.StatusOK {
		t.Fatalf("all healthy => want 200, got %d", rec.Code)
	}
	if b := decode[healthBody](t, rec); b.Checks["store"] != "ok" || b.Checks["redis"] != "ok" {
		t.Fatalf("unexpected checks %+v", b.Checks)
	}

	rec = runHealth(t, NewHandler(map[string]Check{"store": ok, "redis": down}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("redis down => want 503, got %d", rec.Code)
	}
	b := decode[healthBody](t, rec)
	if b.Status != "degraded" || b.Checks["redis"] != "unavailable" || b.Checks["store"] != "ok" {
		t.Fatalf("unexpected body %+v", b)
	}
}
