package contract

import (
	"context"

	"voice-chatbot-be/internal/entity"
)

// DocumentChunkRepository is the vector index. Every query is scoped to a
// tenant (organisation + project); rows from other tenants are never returned.
type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	SearchSimilar(ctx context.Context, embedding []float32, limit int, organisationId, projectId int) ([]*entity.DocumentChunk, error)
	DeleteByDocumentKey(ctx context.Context, documentKey string) error
	CountByTenant(ctx context.Context, organisationId, projectId int) (int64, error)
}
