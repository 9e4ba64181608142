package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"voice-chatbot-be/internal/entity"
	"voice-chatbot-be/internal/pkg/logger"
	"voice-chatbot-be/pkg/rag/gate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) Embed(text string, taskType string) ([]float32, error) {
	s.calls++
	return s.vector, s.err
}

type stubChunkRepo struct {
	chunks     []*entity.DocumentChunk
	err        error
	gotOrgId   int
	gotProjId  int
	gotLimit   int
	searchHits int
}

func (s *stubChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	return nil
}

func (s *stubChunkRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int, organisationId, projectId int) ([]*entity.DocumentChunk, error) {
	s.searchHits++
	s.gotOrgId = organisationId
	s.gotProjId = projectId
	s.gotLimit = limit
	return s.chunks, s.err
}

func (s *stubChunkRepo) DeleteByDocumentKey(ctx context.Context, documentKey string) error {
	return nil
}

func (s *stubChunkRepo) CountByTenant(ctx context.Context, organisationId, projectId int) (int64, error) {
	return int64(len(s.chunks)), nil
}

type stubGenerator struct {
	answer     string
	err        error
	gotContext string
	calls      int
}

func (s *stubGenerator) Generate(ctx context.Context, query string, contextText string) (string, error) {
	s.calls++
	s.gotContext = contextText
	return s.answer, s.err
}

type passthroughNormalizer struct {
	suffix string
}

func (s *passthroughNormalizer) NormalizeAnswer(ctx context.Context, query, answer string) string {
	return answer + s.suffix
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}

func chunk(text string) *entity.DocumentChunk {
	return &entity.DocumentChunk{ChunkText: text}
}

func pinnedGreeter() *gate.Greeter {
	nine := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return gate.NewGreeterWith(func() time.Time { return nine }, func(n int) int { return 0 })
}

func newTestChatService(embedder *stubEmbedder, repo *stubChunkRepo, gen *stubGenerator, norm answerNormalizer) IChatService {
	return NewChatService(embedder, repo, gen, norm, pinnedGreeter(), 5, nopLogger{})
}

func TestRespondEmptyMessage(t *testing.T) {
	svc := newTestChatService(&stubEmbedder{}, &stubChunkRepo{}, &stubGenerator{}, &passthroughNormalizer{})

	_, err := svc.Respond(context.Background(), "   ", 1, 1)

	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestRespondGreetingSkipsRetrieval(t *testing.T) {
	embedder := &stubEmbedder{}
	repo := &stubChunkRepo{}
	gen := &stubGenerator{}
	svc := newTestChatService(embedder, repo, gen, &passthroughNormalizer{})

	answer, err := svc.Respond(context.Background(), "Hello!", 1, 1)

	require.NoError(t, err)
	assert.Contains(t, gate.Templates("Good morning"), answer)
	assert.Zero(t, embedder.calls, "greeting must not be embedded")
	assert.Zero(t, repo.searchHits, "greeting must not hit the index")
	assert.Zero(t, gen.calls, "greeting must not reach the llm")
}

func TestRespondNoContextLiteral(t *testing.T) {
	// Every retrieved chunk is too short to count as meaningful.
	repo := &stubChunkRepo{chunks: []*entity.DocumentChunk{chunk("short"), chunk("   also tiny    ")}}
	gen := &stubGenerator{}
	svc := newTestChatService(&stubEmbedder{vector: []float32{0.1}}, repo, gen, &passthroughNormalizer{})

	answer, err := svc.Respond(context.Background(), "What is the refund policy?", 1, 1)

	require.NoError(t, err)
	assert.Equal(t, gate.NoContextMessage, answer)
	assert.Zero(t, gen.calls, "no-context must not reach the llm")
}

func TestRespondGeneratesFromMeaningfulChunks(t *testing.T) {
	repo := &stubChunkRepo{chunks: []*entity.DocumentChunk{
		chunk("Refunds are processed within 14 business days of approval."),
		chunk("tiny"),
		chunk("Customers may request a refund within 30 days of purchase."),
	}}
	gen := &stubGenerator{answer: "You can request a refund within 30 days."}
	svc := newTestChatService(&stubEmbedder{vector: []float32{0.1}}, repo, gen, &passthroughNormalizer{suffix: " [normalized]"})

	answer, err := svc.Respond(context.Background(), "What is the refund policy?", 7, 9)

	require.NoError(t, err)
	assert.Equal(t, "You can request a refund within 30 days. [normalized]", answer)

	// The short chunk is filtered out before the context is joined.
	assert.Equal(t,
		"Refunds are processed within 14 business days of approval.\n\nCustomers may request a refund within 30 days of purchase.",
		gen.gotContext)

	// Tenant scope and topK flow through to the index untouched.
	assert.Equal(t, 7, repo.gotOrgId)
	assert.Equal(t, 9, repo.gotProjId)
	assert.Equal(t, 5, repo.gotLimit)
}

func TestRespondDefaultsTenantScope(t *testing.T) {
	repo := &stubChunkRepo{}
	svc := newTestChatService(&stubEmbedder{vector: []float32{0.1}}, repo, &stubGenerator{}, &passthroughNormalizer{})

	_, err := svc.Respond(context.Background(), "What is the refund policy?", 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.gotOrgId)
	assert.Equal(t, 1, repo.gotProjId)
}

func TestRespondEmbeddingFailure(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("provider down")}
	repo := &stubChunkRepo{}
	svc := newTestChatService(embedder, repo, &stubGenerator{}, &passthroughNormalizer{})

	_, err := svc.Respond(context.Background(), "What is the refund policy?", 1, 1)

	require.Error(t, err)
	assert.Zero(t, repo.searchHits, "search must not run without a query vector")
}
