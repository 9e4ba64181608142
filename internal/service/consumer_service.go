package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"voice-chatbot-be/internal/dto"
	"voice-chatbot-be/internal/entity"
	"voice-chatbot-be/internal/repository/contract"
	"voice-chatbot-be/pkg/embedding"
	"voice-chatbot-be/pkg/events"
	pkgNats "voice-chatbot-be/pkg/nats"
	"voice-chatbot-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const ingestChunkSize = 1000

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	repo      contract.DocumentChunkRepository
	embedder  *embedding.Embedder
	publisher *pkgNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	repo contract.DocumentChunkRepository,
	embedder *embedding.Embedder,
	publisher *pkgNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		repo:      repo,
		embedder:  embedder,
		publisher: publisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing document embedding for key: %s", payload.DocumentKey)

	content := fmt.Sprintf("Title: %s\nDescription: %s\n\n%s",
		payload.Title,
		payload.Description,
		payload.Content,
	)

	chunks := utils.ChunkText(content, ingestChunkSize)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	vectors, err := cs.embedder.EmbedAll(chunks, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to embed document %s: %v", payload.DocumentKey, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	newChunks := make([]*entity.DocumentChunk, len(chunks))
	for i, chunkText := range chunks {
		newChunks[i] = &entity.DocumentChunk{
			Id:             uuid.New(),
			Key:            fmt.Sprintf("%s_%d", payload.DocumentKey, i),
			ChunkText:      chunkText,
			EmbeddingValue: vectors[i],
			OrganisationId: payload.OrganisationId,
			ProjectId:      payload.ProjectId,
			ChunkIndex:     i,
			Metadata:       payload.Metadata,
			CreatedAt:      time.Now(),
		}
	}

	// Re-queued messages must not duplicate rows
	if err := cs.repo.DeleteByDocumentKey(ctx, payload.DocumentKey); err != nil {
		log.Printf("[ERROR] Failed to delete old chunks for %s: %v", payload.DocumentKey, err)
		msg.Nack()
		return
	}

	if len(newChunks) > 0 {
		if err := cs.repo.CreateBulk(ctx, newChunks); err != nil {
			log.Printf("[ERROR] Failed to create bulk chunks: %v", err)
			msg.Nack()
			return
		}
	}

	cs.publishIndexed(ctx, payload, len(newChunks))

	log.Printf("[SUCCESS] Document indexed: %d chunks for key %s", len(newChunks), payload.DocumentKey)
	msg.Ack()
}

func (cs *consumerService) publishIndexed(ctx context.Context, payload dto.PublishEmbedDocumentMessage, chunkCount int) {
	if cs.publisher == nil {
		return
	}

	event := events.DocumentIndexedEvent{
		DocumentKey:    payload.DocumentKey,
		Title:          payload.Title,
		ChunkCount:     chunkCount,
		OrganisationId: payload.OrganisationId,
		ProjectId:      payload.ProjectId,
		OccurredAt:     time.Now(),
	}
	if err := cs.publisher.Publish(ctx, event); err != nil {
		// The index write already succeeded, losing the notification is tolerable
		log.Printf("[WARN] Failed to publish DOCUMENT_INDEXED for %s: %v", payload.DocumentKey, err)
	}
}
