package implementation

import (
	"voice-chatbot-be/internal/entity"
	"voice-chatbot-be/internal/mapper"
	"voice-chatbot-be/internal/model"
	"voice-chatbot-be/internal/repository/contract"

	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	models := r.mapper.ToModels(chunks)

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, organisationId, projectId int) ([]*entity.DocumentChunk, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.DocumentChunk

	// Using pgvector cosine distance: embedding_value <=> vector
	// CRITICAL: tenant scoping must be applied before ordering so rows from
	// other organisations or projects can never surface.
	err := r.db.WithContext(ctx).
		Where("organisation_id = ?", organisationId).
		Where("project_id = ?", projectId).
		Where("deleted_at IS NULL").
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) DeleteByDocumentKey(ctx context.Context, documentKey string) error {
	return r.db.WithContext(ctx).
		Where("key LIKE ?", documentKey+"\\_%").
		Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) CountByTenant(ctx context.Context, organisationId, projectId int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("organisation_id = ?", organisationId).
		Where("project_id = ?", projectId).
		Count(&count).Error
	return count, err
}
