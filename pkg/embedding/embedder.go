package embedding

import "fmt"

// Embedder wraps an EmbeddingProvider and pins every vector to a fixed
// dimension: upstream vectors longer than Dimension are truncated, shorter
// ones zero-padded at the end. This lets the vector store run on a single
// column type regardless of the upstream model's native width.
type Embedder struct {
	provider  EmbeddingProvider
	dimension int
}

func NewEmbedder(provider EmbeddingProvider, dimension int) *Embedder {
	return &Embedder{
		provider:  provider,
		dimension: dimension,
	}
}

func (e *Embedder) Dimension() int {
	return e.dimension
}

// Embed generates a dimension-normalized vector for a single text.
func (e *Embedder) Embed(text string, taskType string) ([]float32, error) {
	res, err := e.provider.Generate(text, taskType)
	if err != nil {
		return nil, err
	}
	return e.normalize(res.Embedding.Values), nil
}

// EmbedAll generates one vector per input text, order-preserving. The batch
// aborts on the first failure; no partial results are returned.
func (e *Embedder) EmbedAll(texts []string, taskType string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(text, taskType)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d/%d: %w", i+1, len(texts), err)
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func (e *Embedder) normalize(values []float32) []float32 {
	out := make([]float32, e.dimension)
	copy(out, values)
	return out
}
