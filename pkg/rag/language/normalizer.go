package language

import (
	"context"
	"fmt"
	"log"
	"strings"

	"voice-chatbot-be/pkg/llm"
)

const (
	// UnknownLanguage is the sentinel returned when detection fails.
	// Classification failure must never abort the pipeline.
	UnknownLanguage = "Unknown"

	detectionInputLimit  = 500 // runes fed to the detection call
	detectionMaxTokens   = 50
	translationMaxTokens = 2000
)

// TranslationResult carries a completed translation.
type TranslationResult struct {
	TranslatedContent string
	SourceLanguage    string
	TargetLanguage    string
}

// Normalizer enforces the English-output policy: answers generated for
// non-English queries are translated to English before being returned.
type Normalizer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewNormalizer(llmProvider llm.LLMProvider, logger *log.Logger) *Normalizer {
	return &Normalizer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// DetectLanguage classifies the language of the given text, returning a bare
// language name. On upstream failure it degrades to UnknownLanguage.
func (n *Normalizer) DetectLanguage(ctx context.Context, text string) string {
	systemPrompt := "You are a language detection expert. Analyze the following text and respond with ONLY " +
		"the language name in English (e.g., 'English', 'Spanish', 'French', 'German', 'Chinese', 'Japanese', " +
		"'Korean', 'Arabic', 'Hindi', 'Russian', etc.). Do not include any other text or explanations."

	runes := []rune(text)
	if len(runes) > detectionInputLimit {
		runes = runes[:detectionInputLimit]
	}

	detected, err := n.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: string(runes)},
	},
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(detectionMaxTokens),
	)
	if err != nil {
		n.logger.Printf("[WARN] Language detection failed: %v, defaulting to '%s'", err, UnknownLanguage)
		return UnknownLanguage
	}

	return strings.TrimSpace(detected)
}

// Translate converts content into targetLanguage. When sourceLanguage is
// empty the model is instructed to detect and translate in one pass.
func (n *Normalizer) Translate(ctx context.Context, content, targetLanguage, sourceLanguage string) (*TranslationResult, error) {
	var systemPrompt string
	if sourceLanguage != "" {
		systemPrompt = fmt.Sprintf(
			"You are a professional translator. Translate the following text from %s to %s. "+
				"Maintain the original meaning, tone, and formatting. Return only the translated text "+
				"without any explanations or additional text.",
			sourceLanguage, targetLanguage)
	} else {
		systemPrompt = fmt.Sprintf(
			"You are a professional translator. Detect the language of the following text and translate it to %s. "+
				"Maintain the original meaning, tone, and formatting. Return only the translated text "+
				"without any explanations or additional text.",
			targetLanguage)
	}

	translated, err := n.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: content},
	},
		llm.WithTemperature(0.3), // lower temperature for consistent translations
		llm.WithMaxTokens(translationMaxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("translation: %w", err)
	}

	if sourceLanguage == "" {
		sourceLanguage = n.DetectLanguage(ctx, content)
	}

	return &TranslationResult{
		TranslatedContent: translated,
		SourceLanguage:    sourceLanguage,
		TargetLanguage:    targetLanguage,
	}, nil
}

// NormalizeAnswer detects the query's language and, when it is not English,
// translates the answer to English. Translation failure is non-fatal: the
// untranslated answer is returned.
func (n *Normalizer) NormalizeAnswer(ctx context.Context, query, answer string) string {
	queryLanguage := n.DetectLanguage(ctx, query)
	n.logger.Printf("[INFO] Detected query language: %s", queryLanguage)

	if IsEnglish(queryLanguage) {
		return answer
	}

	n.logger.Printf("[INFO] Query was in %s, translating answer to English", queryLanguage)
	result, err := n.Translate(ctx, answer, "English", queryLanguage)
	if err != nil {
		n.logger.Printf("[ERROR] Failed to translate answer to English: %v. Returning original response.", err)
		return answer
	}

	return result.TranslatedContent
}

// IsEnglish reports whether a detected language name means English.
func IsEnglish(language string) bool {
	l := strings.ToLower(language)
	return l == "english" || l == "en"
}
