package utils

import (
	"strings"
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		want      []string
	}{
		{
			name:      "empty input",
			text:      "",
			chunkSize: 100,
			want:      nil,
		},
		{
			name:      "whitespace only",
			text:      "   \n\t  ",
			chunkSize: 100,
			want:      nil,
		},
		{
			name:      "fits in one chunk",
			text:      "hello world",
			chunkSize: 100,
			want:      []string{"hello world"},
		},
		{
			name:      "splits on word boundary",
			text:      "one two three four",
			chunkSize: 9,
			want:      []string{"one two", "three", "four"},
		},
		{
			name:      "single word longer than chunk size is never truncated",
			text:      "supercalifragilisticexpialidocious ok",
			chunkSize: 10,
			want:      []string{"supercalifragilisticexpialidocious", "ok"},
		},
		{
			name:      "collapses internal whitespace",
			text:      "a  b\n\nc",
			chunkSize: 100,
			want:      []string{"a b c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkText(tt.text, tt.chunkSize)
			if len(got) != len(tt.want) {
				t.Fatalf("ChunkText() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Re-joining all chunks with a single space must reconstruct the
// whitespace-normalized token sequence of the input.
func TestChunkTextReconstruction(t *testing.T) {
	inputs := []string{
		"Returns accepted within 30 days of purchase with receipt.",
		"a b c d e f g h i j k l m n o p",
		"one",
		strings.Repeat("lorem ipsum dolor sit amet ", 50),
	}

	for _, text := range inputs {
		for _, size := range []int{5, 12, 50, 1000} {
			chunks := ChunkText(text, size)
			joined := strings.Join(chunks, " ")
			normalized := strings.Join(strings.Fields(text), " ")
			if joined != normalized {
				t.Errorf("ChunkText(%q, %d): rejoined %q, want %q", text, size, joined, normalized)
			}
		}
	}
}
