package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded slice of an ingested document, scoped to a
// tenant (organisation + project).
type DocumentChunk struct {
	Id             uuid.UUID
	Key            string
	ChunkText      string
	EmbeddingValue []float32
	OrganisationId int
	ProjectId      int
	ChunkIndex     int
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
