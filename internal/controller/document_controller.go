package controller

import (
	"voice-chatbot-be/internal/dto"
	"voice-chatbot-be/internal/pkg/serverutils"
	"voice-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
}

type documentController struct {
	publisherService service.IPublisherService
}

func NewDocumentController(publisherService service.IPublisherService) IDocumentController {
	return &documentController{
		publisherService: publisherService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Post("document", c.Ingest)
}

// Ingest queues a document for chunking, embedding and indexing.
func (c *documentController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	documentKey, err := c.publisherService.QueueDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(dto.IngestDocumentResponse{
		DocumentKey: documentKey,
		Status:      "queued",
	})
}
