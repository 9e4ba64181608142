package embedding

import (
	"errors"
	"testing"
)

type stubProvider struct {
	dims    int
	failOn  string
	calls   []string
	counter float32
}

func (s *stubProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	s.calls = append(s.calls, text)
	if text == s.failOn {
		return nil, errors.New("upstream down")
	}
	values := make([]float32, s.dims)
	for i := range values {
		s.counter++
		values[i] = s.counter
	}
	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: values}}, nil
}

func TestEmbedDimensionNormalization(t *testing.T) {
	tests := []struct {
		name         string
		upstreamDims int
	}{
		{"upstream smaller, zero padded", 256},
		{"upstream exact", 512},
		{"upstream larger, truncated", 1536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEmbedder(&stubProvider{dims: tt.upstreamDims}, 512)

			vec, err := e.Embed("some text", "RETRIEVAL_QUERY")
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if len(vec) != 512 {
				t.Fatalf("len(vec) = %d, want 512", len(vec))
			}

			if tt.upstreamDims < 512 {
				for i := tt.upstreamDims; i < 512; i++ {
					if vec[i] != 0 {
						t.Fatalf("vec[%d] = %f, want zero padding", i, vec[i])
					}
				}
			}
			if vec[0] == 0 {
				t.Fatal("vec[0] should carry upstream data")
			}
		})
	}
}

func TestEmbedAllOrderPreserving(t *testing.T) {
	stub := &stubProvider{dims: 4}
	e := NewEmbedder(stub, 4)

	vectors, err := e.EmbedAll([]string{"a", "b", "c"}, "RETRIEVAL_DOCUMENT")
	if err != nil {
		t.Fatalf("EmbedAll() error = %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("len(vectors) = %d, want 3", len(vectors))
	}
	if stub.calls[0] != "a" || stub.calls[1] != "b" || stub.calls[2] != "c" {
		t.Errorf("provider called out of order: %v", stub.calls)
	}
	// stub emits strictly increasing component values, so order is observable
	if vectors[0][0] >= vectors[1][0] || vectors[1][0] >= vectors[2][0] {
		t.Errorf("vectors not in input order: %v", vectors)
	}
}

func TestEmbedAllAbortsOnFirstFailure(t *testing.T) {
	stub := &stubProvider{dims: 4, failOn: "b"}
	e := NewEmbedder(stub, 4)

	vectors, err := e.EmbedAll([]string{"a", "b", "c"}, "RETRIEVAL_DOCUMENT")
	if err == nil {
		t.Fatal("EmbedAll() expected error")
	}
	if vectors != nil {
		t.Errorf("expected no partial results, got %d vectors", len(vectors))
	}
	if len(stub.calls) != 2 {
		t.Errorf("provider calls = %d, want 2 (abort after failure)", len(stub.calls))
	}
}
