package gate

import (
	"strings"
)

// NoContextMessage is the exact reply when retrieval produced nothing usable.
// The LLM system prompt references the same literal, so it must not drift.
const NoContextMessage = "No context found for your query."

// minMeaningfulLength is the trimmed-length threshold below which a retrieved
// chunk is considered noise and excluded from the context set.
const minMeaningfulLength = 20

// Only pure, exact greetings short-circuit the pipeline. Greetings embedded
// in longer sentences, other languages, and punctuation variants (beyond a
// trailing "!") all fall through to retrieval.
var pureGreetings = []string{
	"hello", "hi", "hey", "greetings",
	"good morning", "good afternoon", "good evening",
	"how are you", "how do you do",
}

// Outcome is the terminal state of the answer gate for a single query.
type Outcome int

const (
	OutcomeGreeting Outcome = iota
	OutcomeNoContext
	OutcomeGenerate
)

// IsPureGreeting reports whether the query is exactly one of the known
// greeting phrases, optionally with a trailing "!".
func IsPureGreeting(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, greeting := range pureGreetings {
		if q == greeting || q == greeting+"!" {
			return true
		}
	}
	return false
}

// FilterMeaningful drops retrieved chunks whose trimmed length does not
// exceed the meaningful-length threshold, preserving order.
func FilterMeaningful(chunks []string) []string {
	var meaningful []string
	for _, chunk := range chunks {
		if len(strings.TrimSpace(chunk)) > minMeaningfulLength {
			meaningful = append(meaningful, chunk)
		}
	}
	return meaningful
}

// JoinContext combines the surviving chunks into the context string handed to
// the LLM.
func JoinContext(chunks []string) string {
	return strings.Join(chunks, "\n\n")
}

// Classify runs the gate's state machine over an already-filtered context
// set. The greeting test is expected to have been applied before retrieval.
func Classify(query string, meaningfulChunks []string) Outcome {
	if IsPureGreeting(query) {
		return OutcomeGreeting
	}
	if len(meaningfulChunks) == 0 {
		return OutcomeNoContext
	}
	return OutcomeGenerate
}
