package service

import (
	"context"
	"errors"
	"strings"

	"voice-chatbot-be/internal/constant"
	"voice-chatbot-be/internal/pkg/logger"
	"voice-chatbot-be/internal/repository/contract"
	"voice-chatbot-be/pkg/rag/gate"
)

// ErrEmptyMessage is returned when the trimmed query is empty.
var ErrEmptyMessage = errors.New("Empty message received")

type IChatService interface {
	Respond(ctx context.Context, query string, organisationId, projectId int) (string, error)
}

// queryEmbedder is the slice of the embedding layer the chat pipeline needs.
type queryEmbedder interface {
	Embed(text string, taskType string) ([]float32, error)
}

type answerGenerator interface {
	Generate(ctx context.Context, query string, contextText string) (string, error)
}

type answerNormalizer interface {
	NormalizeAnswer(ctx context.Context, query, answer string) string
}

type chatService struct {
	embedder   queryEmbedder
	repo       contract.DocumentChunkRepository
	generator  answerGenerator
	normalizer answerNormalizer
	greeter    *gate.Greeter
	topK       int
	logger     logger.ILogger
}

func NewChatService(
	embedder queryEmbedder,
	repo contract.DocumentChunkRepository,
	generator answerGenerator,
	normalizer answerNormalizer,
	greeter *gate.Greeter,
	topK int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		embedder:   embedder,
		repo:       repo,
		generator:  generator,
		normalizer: normalizer,
		greeter:    greeter,
		topK:       topK,
		logger:     log,
	}
}

// Respond runs the full answer pipeline for one user query:
// greeting gate, embed, similarity search, relevance filter, generation,
// language normalization.
func (s *chatService) Respond(ctx context.Context, query string, organisationId, projectId int) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyMessage
	}

	if organisationId <= 0 {
		organisationId = constant.DefaultOrganisationId
	}
	if projectId <= 0 {
		projectId = constant.DefaultProjectId
	}

	// Pure greetings never hit the embedding provider or the index.
	if gate.IsPureGreeting(query) {
		s.logger.Info("ChatService", "Greeting short-circuit", map[string]interface{}{"query": query})
		return s.greeter.Reply(), nil
	}

	queryVector, err := s.embedder.Embed(query, "RETRIEVAL_QUERY")
	if err != nil {
		s.logger.Error("ChatService", "Query embedding failed", map[string]interface{}{"error": err})
		return "", err
	}

	chunks, err := s.repo.SearchSimilar(ctx, queryVector, s.topK, organisationId, projectId)
	if err != nil {
		s.logger.Error("ChatService", "Similarity search failed", map[string]interface{}{"error": err})
		return "", err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.ChunkText
	}

	meaningful := gate.FilterMeaningful(texts)
	s.logger.Info("ChatService", "Retrieval complete", map[string]interface{}{
		"retrieved":  len(chunks),
		"meaningful": len(meaningful),
	})

	if gate.Classify(query, meaningful) == gate.OutcomeNoContext {
		return gate.NoContextMessage, nil
	}

	answer, err := s.generator.Generate(ctx, query, gate.JoinContext(meaningful))
	if err != nil {
		return "", err
	}

	return s.normalizer.NormalizeAnswer(ctx, query, answer), nil
}
