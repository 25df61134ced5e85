package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edubreezy_backend/internals/configs"
)

func newFinalizeApp(t *testing.T) *fiber.App {
	t.Helper()
	fx := newIngestFixture(t)

	app := fiber.New()
	ctrl := NewFinalizeController(fx.db)
	app.Get("/api/internal/cron/biometric/finalize", ctrl.RunNightly)
	return app
}

func callFinalize(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/internal/cron/biometric/finalize", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestFinalizeEndpoint_RequiresConfiguredSecret(t *testing.T) {
	prev := configs.CronSecret
	configs.CronSecret = ""
	t.Cleanup(func() { configs.CronSecret = prev })

	app := newFinalizeApp(t)
	resp := callFinalize(t, app, "Bearer whatever")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestFinalizeEndpoint_RejectsBadToken(t *testing.T) {
	prev := configs.CronSecret
	configs.CronSecret = "s3cret"
	t.Cleanup(func() { configs.CronSecret = prev })

	app := newFinalizeApp(t)

	resp := callFinalize(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = callFinalize(t, app, "Bearer salah")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFinalizeEndpoint_RunsWithValidToken(t *testing.T) {
	prev := configs.CronSecret
	configs.CronSecret = "s3cret"
	t.Cleanup(func() { configs.CronSecret = prev })

	app := newFinalizeApp(t)
	resp := callFinalize(t, app, "Bearer s3cret")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
