package utils

import "strings"

// ChunkText splits a long string into chunks of at most 'chunkSize' characters,
// breaking only on whitespace so words are never cut in half. A single word
// longer than chunkSize becomes its own chunk rather than being truncated.
func ChunkText(text string, chunkSize int) []string {
	words := strings.Fields(text)

	var chunks []string
	var current []string
	currentSize := 0

	for _, word := range words {
		// +1 accounts for the separating space
		if currentSize+len(word)+1 > chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			currentSize = len(word)
		} else {
			current = append(current, word)
			currentSize += len(word) + 1
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
