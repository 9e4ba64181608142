package embedding

import "errors"

// ErrNoEmbedding is returned when the upstream response carries no embedding
// field. Callers must treat it as fatal for the whole batch.
var ErrNoEmbedding = errors.New("no embedding in upstream response")

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}
