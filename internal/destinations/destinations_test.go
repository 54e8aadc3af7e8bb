package destinations

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"love-journey/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModule(t *testing.T) *Module {
	t.Helper()
	t.Setenv("ADMIN_SECRET", "test-passphrase")
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=50&connectTimeoutMS=50")

	m, err := NewModule(logger.NewLogger())
	require.NoError(t, err)
	return m
}

func TestModule_NotReadyBeforeFirstConnection(t *testing.T) {
	m := newTestModule(t)
	assert.False(t, m.IsReady())

	app := fiber.New()
	m.RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/destinations", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, false, envelope["success"])

	require.NoError(t, m.Stop(context.Background()))
}

func TestModule_WiresAllComponents(t *testing.T) {
	m := newTestModule(t)
	assert.NotNil(t, m.Config)
	assert.NotNil(t, m.Connector)
	assert.NotNil(t, m.Repo)
	assert.NotNil(t, m.Usecase)
	assert.NotNil(t, m.Handler)
	assert.Equal(t, "test-passphrase", m.Config.AdminSecret)
}
