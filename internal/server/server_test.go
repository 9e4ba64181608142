package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"voice-chatbot-be/internal/constant"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootBannerListsEntrypoints(t *testing.T) {
	app := fiber.New()
	app.Get("/", rootBanner)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, constant.AppName, payload["service"])
	assert.Equal(t, constant.AppVersion, payload["version"])
	assert.Equal(t, "/api/v1/health/", payload["health"])
	assert.Equal(t, "/ws", payload["websocket"])
}
