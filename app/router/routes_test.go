package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirphl/social-admin/app/handlers"
	"github.com/amirphl/social-admin/app/middleware"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires handlers without flows; only paths that fail before reaching a flow are exercised
func newTestRouter(t *testing.T, cfg Config, checks ...HealthCheck) *fiber.App {
	t.Helper()
	r := NewFiberRouter(cfg, Handlers{
		Auth:            handlers.NewAuthHandler(nil, nil, nil),
		AdminAuth:       handlers.NewAdminAuthHandler(nil),
		AdminAccount:    handlers.NewAdminAccountHandler(nil),
		BusinessProfile: handlers.NewBusinessProfileHandler(nil),
	}, middleware.NewAuthMiddleware(nil), checks...)
	r.SetupRoutes()
	return r.GetApp()
}

type response struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out response
	if json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out, resp.Header.Get("X-Request-ID")
}

func TestPing(t *testing.T) {
	app := newTestRouter(t, Config{})
	req := httptest.NewRequest(fiber.MethodGet, "/api/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		app := newTestRouter(t, Config{Version: "1.2.3"}, HealthCheck{
			Name:  "database",
			Check: func(ctx context.Context) error { return nil },
		})
		status, body, _ := send(t, app, fiber.MethodGet, "/api/v1/health", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.True(t, body.Success)
		assert.Equal(t, "ok", body.Data["status"])
		assert.Equal(t, "1.2.3", body.Data["version"])
	})

	t.Run("degraded", func(t *testing.T) {
		app := newTestRouter(t, Config{},
			HealthCheck{Name: "database", Check: func(ctx context.Context) error { return nil }},
			HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return errors.New("connection refused") }},
		)
		status, body, _ := send(t, app, fiber.MethodGet, "/api/v1/health", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.False(t, body.Success)
		assert.Equal(t, "degraded", body.Data["status"])

		deps, ok := body.Data["dependencies"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "healthy", deps["database"])
		assert.Contains(t, deps["redis"], "connection refused")
	})
}

func TestNotFound(t *testing.T) {
	app := newTestRouter(t, Config{})
	status, body, _ := send(t, app, fiber.MethodGet, "/api/v1/nothing-here", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestRouter(t, Config{})

	paths := []struct {
		method string
		path   string
	}{
		{fiber.MethodPost, "/api/v1/auth/logout"},
		{fiber.MethodGet, "/api/v1/auth/business/profile"},
		{fiber.MethodPut, "/api/v1/auth/business/update"},
		{fiber.MethodGet, "/api/v1/admin/accounts/pending"},
		{fiber.MethodPost, "/api/v1/admin/accounts/approve"},
	}
	for _, p := range paths {
		status, body, _ := send(t, app, p.method, p.path, "")
		assert.Equal(t, fiber.StatusUnauthorized, status, p.path)
		assert.Equal(t, "MISSING_AUTHORIZATION_HEADER", body.Error.Code, p.path)
	}
}

func TestAuthRateLimit(t *testing.T) {
	app := newTestRouter(t, Config{AuthRateLimit: 2})

	for i := 0; i < 2; i++ {
		status, body, _ := send(t, app, fiber.MethodPost, "/api/v1/auth/personal/login", "{broken")
		require.Equal(t, fiber.StatusBadRequest, status)
		require.Equal(t, "INVALID_REQUEST", body.Error.Code)
	}

	status, body, _ := send(t, app, fiber.MethodPost, "/api/v1/auth/personal/login", "{broken")
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body.Error.Code)
}

func TestContainsWildcard(t *testing.T) {
	assert.True(t, containsWildcard([]string{"https://a.example", "*"}))
	assert.False(t, containsWildcard([]string{"https://a.example"}))
}
