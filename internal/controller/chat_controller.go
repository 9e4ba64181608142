package controller

import (
	"errors"
	"strconv"

	"voice-chatbot-be/internal/dto"
	"voice-chatbot-be/internal/pkg/serverutils"
	"voice-chatbot-be/internal/service"
	"voice-chatbot-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Message(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService  service.IChatService
	audioService service.IAudioService
	voiceEnabled bool
}

func NewChatController(chatService service.IChatService, audioService service.IAudioService, voiceEnabled bool) IChatController {
	return &chatController{
		chatService:  chatService,
		audioService: audioService,
		voiceEnabled: voiceEnabled,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Post("message", c.Message)
	h.Post("chat", c.Chat)
}

// Message handles plain text questions.
func (c *chatController) Message(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	answer, err := c.chatService.Respond(ctx.Context(), req.Message, req.OrganisationId, req.ProjectId)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return err
	}

	// Chat payloads go out flat, the envelope is only used for errors
	return ctx.JSON(dto.ChatResponse{
		Answer:    answer,
		IsVoice:   req.IsVoice,
		Timestamp: utils.NowUnixFloat(),
	})
}

// Chat handles multipart requests carrying either a text field or an audio
// file, exclusively. Audio is transcribed first, and when the request was
// voice the answer is also synthesized back to speech.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	text := ctx.FormValue("text")
	audioFile, audioErr := ctx.FormFile("audio")
	hasAudio := audioErr == nil && audioFile != nil

	if text != "" && hasAudio {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Provide either text or audio, not both"))
	}
	if text == "" && !hasAudio {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Either text or audio is required"))
	}

	organisationId, _ := strconv.Atoi(ctx.FormValue("organisation_id"))
	projectId, _ := strconv.Atoi(ctx.FormValue("project_id"))

	isVoice := hasAudio
	transcript := ""

	query := text
	if hasAudio {
		if !c.voiceEnabled {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Voice processing is disabled"))
		}
		var err error
		query, err = c.audioService.TranscribeUpload(ctx.Context(), audioFile)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Failed to transcribe audio"))
		}
		transcript = query
	}

	answer, err := c.chatService.Respond(ctx.Context(), query, organisationId, projectId)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return err
	}

	res := dto.ChatResponse{
		Answer:     answer,
		Transcript: transcript,
		IsVoice:    isVoice,
		Timestamp:  utils.NowUnixFloat(),
	}

	if isVoice && c.voiceEnabled {
		// Synthesis failure is tolerated, the reply goes out text-only
		if audioURL, err := c.audioService.SynthesizeReply(ctx.Context(), answer); err == nil {
			res.AudioURL = audioURL
		}
	}

	return ctx.JSON(res)
}
