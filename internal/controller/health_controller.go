package controller

import (
	"context"

	"voice-chatbot-be/internal/constant"
	"voice-chatbot-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// chunkCounter reports how many chunks the default tenant has indexed.
type chunkCounter interface {
	CountByTenant(ctx context.Context, organisationId, projectId int) (int64, error)
}

// connectionCounter reports locally connected websocket clients.
type connectionCounter interface {
	ClientCount() int
}

// audioCounter reports synthesized replies still cached on disk.
type audioCounter interface {
	Count() int
}

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	voiceEnabled bool
	chunks       chunkCounter
	connections  connectionCounter
	audio        audioCounter
}

func NewHealthController(voiceEnabled bool, chunks chunkCounter, connections connectionCounter, audio audioCounter) IHealthController {
	return &healthController{
		voiceEnabled: voiceEnabled,
		chunks:       chunks,
		connections:  connections,
		audio:        audio,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/health")
	h.Get("/", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	// A count failure degrades the report, it never fails the check
	indexed, err := c.chunks.CountByTenant(ctx.Context(), constant.DefaultOrganisationId, constant.DefaultProjectId)
	if err != nil {
		indexed = 0
	}

	return ctx.JSON(dto.HealthResponse{
		Status:            "healthy",
		Service:           constant.AppName,
		Version:           constant.AppVersion,
		VoiceEnabled:      c.voiceEnabled,
		IndexedChunks:     indexed,
		ActiveConnections: c.connections.ClientCount(),
		CachedAudioFiles:  c.audio.Count(),
	})
}
