package controller

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChunkCounter struct {
	count   int64
	err     error
	gotOrg  int
	gotProj int
}

func (f *fakeChunkCounter) CountByTenant(ctx context.Context, organisationId, projectId int) (int64, error) {
	f.gotOrg = organisationId
	f.gotProj = projectId
	return f.count, f.err
}

type fakeConnectionCounter struct{ count int }

func (f *fakeConnectionCounter) ClientCount() int { return f.count }

type fakeAudioCounter struct{ count int }

func (f *fakeAudioCounter) Count() int { return f.count }

func TestHealthReportsCounters(t *testing.T) {
	chunks := &fakeChunkCounter{count: 42}
	app := fiber.New()
	NewHealthController(true, chunks, &fakeConnectionCounter{count: 3}, &fakeAudioCounter{count: 7}).
		RegisterRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/health/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "Voice Chatbot API", payload["service"])
	assert.Equal(t, "1.0.0", payload["version"])
	assert.Equal(t, true, payload["voice_enabled"])
	assert.Equal(t, float64(42), payload["indexed_chunks"])
	assert.Equal(t, float64(3), payload["active_connections"])
	assert.Equal(t, float64(7), payload["cached_audio_files"])

	// Counts come from the default tenant
	assert.Equal(t, 1, chunks.gotOrg)
	assert.Equal(t, 1, chunks.gotProj)
}

func TestHealthToleratesCountFailure(t *testing.T) {
	chunks := &fakeChunkCounter{err: assert.AnError}
	app := fiber.New()
	NewHealthController(false, chunks, &fakeConnectionCounter{}, &fakeAudioCounter{}).
		RegisterRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/health/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, float64(0), payload["indexed_chunks"])
}
