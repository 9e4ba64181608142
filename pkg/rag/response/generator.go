package response

import (
	"context"
	"fmt"
	"log"

	"voice-chatbot-be/pkg/llm"
	"voice-chatbot-be/pkg/rag/gate"
)

const answerMaxTokens = 500

// Generator produces the final answer for a query from a pre-built context
// string. The model is constrained to the supplied context and instructed to
// emit the no-context literal when the context cannot answer the question, so
// the gate's filtering is backed up inside the prompt as well.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Generate asks the model to answer the query strictly from contextText.
func (g *Generator) Generate(ctx context.Context, query string, contextText string) (string, error) {
	systemPrompt := fmt.Sprintf(
		"You are a helpful assistant. ONLY use the provided context to answer the user's question. "+
			"If the context does not contain relevant information to answer the question, respond with exactly: '%s' "+
			"Do not provide general information or suggestions.\n\nContext:\n%s",
		gate.NoContextMessage,
		contextText,
	)

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: query},
	}

	answer, err := g.llmProvider.Chat(ctx, history,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(answerMaxTokens),
	)
	if err != nil {
		g.logger.Printf("[ERROR] LLM generation failed: %v", err)
		return "", fmt.Errorf("llm generation: %w", err)
	}

	return answer, nil
}
