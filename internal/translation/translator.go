package translation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// DefaultTargetLanguage is the language meanings are written in.
const DefaultTargetLanguage = "Simplified Chinese"

// Translator turns an English word into its meaning in the target language.
type Translator interface {
	Translate(ctx context.Context, word string) (string, error)
}

// ChatClient is the part of the OpenAI client the translator uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAITranslator translates with OpenAI chat models.
type OpenAITranslator struct {
	apiKey string
	client ChatClient
	model  string
	target string
}

// NewOpenAITranslator creates a new translator instance
func NewOpenAITranslator(apiKey, target string) *OpenAITranslator {
	if target == "" {
		target = DefaultTargetLanguage
	}
	return &OpenAITranslator{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
		target: target,
	}
}

// WithClient replaces the chat client.
func (t *OpenAITranslator) WithClient(client ChatClient) *OpenAITranslator {
	t.client = client
	return t
}

// Translate translates an English word
func (t *OpenAITranslator) Translate(ctx context.Context, word string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Prompt(word, t.target),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return cleanAnswer(resp.Choices[0].Message.Content)
}

// Prompt builds the translation request shared by all backends.
func Prompt(word, target string) string {
	return fmt.Sprintf("Translate the English word '%s' to %s as it would appear in a school vocabulary list. Respond with only the translation, nothing else.", word, target)
}

func cleanAnswer(answer string) (string, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(answer), "\n")
	line = strings.TrimSpace(strings.Trim(line, "\"'`"))
	if line == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return line, nil
}

// TranslationCache stores translations in memory
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(word, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[strings.ToLower(word)] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(word string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[strings.ToLower(word)]
	return translation, ok
}

// GetAll returns all cached translations
func (tc *TranslationCache) GetAll() map[string]string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	result := make(map[string]string, len(tc.translations))
	for k, v := range tc.translations {
		result[k] = v
	}
	return result
}

// CachedTranslator answers repeated words from a cache.
type CachedTranslator struct {
	next  Translator
	cache *TranslationCache
}

// NewCachedTranslator wraps next with a fresh cache.
func NewCachedTranslator(next Translator) *CachedTranslator {
	return &CachedTranslator{next: next, cache: NewTranslationCache()}
}

// Translate returns the cached meaning or asks the wrapped translator.
func (c *CachedTranslator) Translate(ctx context.Context, word string) (string, error) {
	if meaning, ok := c.cache.Get(word); ok {
		return meaning, nil
	}
	meaning, err := c.next.Translate(ctx, word)
	if err != nil {
		return "", err
	}
	c.cache.Add(word, meaning)
	return meaning, nil
}

// Cache returns the underlying cache.
func (c *CachedTranslator) Cache() *TranslationCache {
	return c.cache
}

// Config selects and configures a translation backend.
type Config struct {
	Provider    string // "openai" or "gemini"
	OpenAIKey   string
	GeminiKey   string
	GeminiModel string
	Target      string
}

// New creates a cached translator for the configured provider.
func New(ctx context.Context, cfg Config) (Translator, error) {
	switch cfg.Provider {
	case "openai", "":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found")
		}
		return NewCachedTranslator(NewOpenAITranslator(cfg.OpenAIKey, cfg.Target)), nil
	case "gemini":
		g, err := NewGeminiTranslator(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.Target)
		if err != nil {
			return nil, err
		}
		return NewCachedTranslator(g), nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}
}
