package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voice-chatbot-be/internal/pkg/logger"
	"voice-chatbot-be/pkg/events"
	pkgNats "voice-chatbot-be/pkg/nats"
	"voice-chatbot-be/pkg/utils"
)

// RealtimeDelivery defines how to push updates to connected sockets.
// Typically implemented by the WebSocket Hub.
type RealtimeDelivery interface {
	Broadcast(message []byte)
}

// NotifierService bridges bus events to connected WebSocket clients, so a
// browser learns when a document it submitted has finished indexing.
type NotifierService struct {
	subscriber *pkgNats.Subscriber
	delivery   RealtimeDelivery
	logger     logger.ILogger
}

func NewNotifierService(sub *pkgNats.Subscriber, delivery RealtimeDelivery, log logger.ILogger) *NotifierService {
	return &NotifierService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus. A nil subscriber disables the
// bridge without failing startup.
func (s *NotifierService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotifierService", "NATS subscriber not configured, realtime indexing notifications disabled", nil)
		return
	}

	err := s.subscriber.Subscribe("chatbot.>", "chatbot-ws-notifier", s.handleEvent)
	if err != nil {
		s.logger.Error("NotifierService", "Failed to start event subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotifierService", "Notifier started, listening to chatbot.>", nil)
}

func (s *NotifierService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects arrive as chatbot.<TYPE>
	typeCode := strings.TrimPrefix(event.EventType(), "chatbot.")

	s.logger.Info("NotifierService", fmt.Sprintf("Processing event: %s", typeCode), map[string]interface{}{"type": typeCode})

	if typeCode != "DOCUMENT_INDEXED" {
		return nil
	}

	frame := map[string]interface{}{
		"type":      "notification",
		"event":     typeCode,
		"timestamp": utils.NowUnixFloat(),
	}
	for k, v := range event.Payload() {
		frame[k] = v
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Broadcast(data)
	}
	return nil
}
