package service

import (
	"context"
	"encoding/json"

	"voice-chatbot-be/internal/constant"
	"voice-chatbot-be/internal/dto"
	"voice-chatbot-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	QueueDocument(ctx context.Context, req *dto.IngestDocumentRequest) (string, error)
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

// QueueDocument assigns a document key and hands the document to the
// embedding consumer. Indexing happens asynchronously.
func (s *publisherService) QueueDocument(ctx context.Context, req *dto.IngestDocumentRequest) (string, error) {
	documentKey := uuid.New().String()

	organisationId := req.OrganisationId
	if organisationId <= 0 {
		organisationId = constant.DefaultOrganisationId
	}
	projectId := req.ProjectId
	if projectId <= 0 {
		projectId = constant.DefaultProjectId
	}

	payload := dto.PublishEmbedDocumentMessage{
		DocumentKey:    documentKey,
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		OrganisationId: organisationId,
		ProjectId:      projectId,
		Metadata:       req.Metadata,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Error("PublisherService", "Failed to publish document message", map[string]interface{}{"error": err, "document_key": documentKey})
		return "", err
	}

	s.logger.Info("PublisherService", "Document queued for indexing", map[string]interface{}{"document_key": documentKey})
	return documentKey, nil
}
