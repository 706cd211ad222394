package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/ourphotos-accounts/internal/config"
	"github.com/sefazor/ourphotos-accounts/internal/controller"
	"github.com/sefazor/ourphotos-accounts/internal/handler"
	"github.com/sefazor/ourphotos-accounts/internal/service"
	"github.com/sefazor/ourphotos-accounts/pkg/validation"
)

func testConfig() *config.Config {
	cfg := &config.Config{CORSOrigins: "http://localhost:5173"}
	cfg.JWT.Secret = "secret"
	cfg.JWT.Issuer = "test"
	cfg.Reset.CodeTTL = 5 * time.Minute
	return cfg
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := testConfig()
	authService := service.NewAuthService(nil, nil, nil, nil, nil, newAuthServiceConfig(cfg), nil)
	return newApp(cfg, nil,
		handler.NewAuthHandler(controller.NewAuthController(authService), validation.NewValidator(), nil),
		handler.NewUserHandler(controller.NewUserController(service.NewUserService(nil)), nil),
		newTokenManager(cfg),
	)
}

func TestNewApp_HealthAndRequestID(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-1")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-1", resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api"+handler.PathProfile, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestNewAuthServiceConfig(t *testing.T) {
	assert.Equal(t, 5*time.Minute, newAuthServiceConfig(testConfig()).ResetCodeTTL)
}

func TestNewApp_ConfirmGuardSharedAcrossRoutes(t *testing.T) {
	app := newTestApp(t)

	post := func(path, body string) int {
		req := httptest.NewRequest(http.MethodPost, "/api"+path, strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	for i := 0; i < confirmGuardMax/2; i++ {
		assert.Equal(t, fiber.StatusBadRequest, post(handler.PathCheckResetCode, `{"code":"12"}`))
		assert.Equal(t, fiber.StatusBadRequest, post(handler.PathResetPassword, `{"email":"a@b.com","code":"12","password":"Passw0rd"}`))
	}
	assert.Equal(t, fiber.StatusTooManyRequests, post(handler.PathCheckResetCode, `{"code":"12"}`))
	assert.Equal(t, fiber.StatusTooManyRequests, post(handler.PathResetPassword, `{"email":"a@b.com","code":"12","password":"Passw0rd"}`))

	// other routes keep their own budget
	assert.Equal(t, fiber.StatusBadRequest, post(handler.PathForgotPassword, `{"email":"nope"}`))
}
