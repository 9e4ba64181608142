package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"voice-chatbot-be/internal/constant"
	"voice-chatbot-be/internal/dto"
	"voice-chatbot-be/internal/pkg/logger"
	"voice-chatbot-be/internal/service"
	"voice-chatbot-be/pkg/utils"
)

// Dispatcher routes one inbound frame to its handler and emits the reply
// frames. A per-frame failure produces an error frame, never a closed socket.
type Dispatcher struct {
	chatService  service.IChatService
	audioService service.IAudioService
	voiceEnabled bool
	logger       logger.ILogger
}

func NewDispatcher(chatService service.IChatService, audioService service.IAudioService, voiceEnabled bool, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		chatService:  chatService,
		audioService: audioService,
		voiceEnabled: voiceEnabled,
		logger:       log,
	}
}

// Dispatch handles a single raw frame, calling emit for every frame to send
// back on the same connection.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte, emit func([]byte)) {
	var frame dto.WsClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		emit(errorFrame("Invalid message format"))
		return
	}

	switch frame.Type {
	case constant.WsFramePing:
		emit(marshalFrame(dto.WsPongFrame{Type: constant.WsFramePong}))

	case constant.WsFrameUserMessage:
		d.handleUserMessage(ctx, frame, emit)

	default:
		emit(errorFrame(fmt.Sprintf("Unknown message type: %s", frame.Type)))
	}
}

func (d *Dispatcher) handleUserMessage(ctx context.Context, frame dto.WsClientFrame, emit func([]byte)) {
	// The indicator is only ever switched on; the bot_response or error frame
	// that follows is what clears it client-side.
	emit(marshalFrame(dto.WsTypingFrame{Type: constant.WsFrameTyping, IsTyping: true}))

	answer, err := d.chatService.Respond(ctx, frame.Text, frame.OrganisationId, frame.ProjectId)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			emit(errorFrame("Empty message received"))
			return
		}
		d.logger.Error("Dispatcher", "Chat pipeline failed", map[string]interface{}{"error": err})
		emit(errorFrame("Failed to process message"))
		return
	}

	response := dto.WsBotResponseFrame{
		Type:      constant.WsFrameBotResponse,
		Text:      answer,
		IsVoice:   frame.IsVoice,
		Timestamp: utils.NowUnixFloat(),
	}

	if frame.IsVoice && d.voiceEnabled && d.audioService != nil {
		audioURL, err := d.audioService.SynthesizeReply(ctx, answer)
		if err != nil {
			// The text answer still goes out, only the audio is missing
			d.logger.Warn("Dispatcher", "Reply synthesis failed", map[string]interface{}{"error": err})
		} else {
			response.AudioURL = audioURL
		}
	}

	emit(marshalFrame(response))
}

func errorFrame(message string) []byte {
	return marshalFrame(dto.WsErrorFrame{Type: constant.WsFrameError, Message: message})
}

func marshalFrame(v interface{}) []byte {
	data, _ := json.Marshal(v)
	return data
}
