package phonetic

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ChatClient is the part of the OpenAI client the fetcher uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Fetcher looks up IPA transcriptions for English words
type Fetcher struct {
	apiKey  string
	client  ChatClient
	model   string
	timeout time.Duration
}

// NewFetcher creates a new phonetic information fetcher
func NewFetcher(apiKey string) *Fetcher {
	return &Fetcher{
		apiKey:  apiKey,
		client:  openai.NewClient(apiKey),
		model:   openai.GPT4oMini,
		timeout: 30 * time.Second,
	}
}

// WithClient replaces the chat client.
func (f *Fetcher) WithClient(client ChatClient) *Fetcher {
	f.client = client
	return f
}

// WithModel sets the chat model.
func (f *Fetcher) WithModel(model string) *Fetcher {
	if model != "" {
		f.model = model
	}
	return f
}

// Fetch returns the IPA transcription of a word or phrase, wrapped in
// slashes like "/ˈkʌp/".
func (f *Fetcher) Fetch(ctx context.Context, word string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}
	if strings.TrimSpace(word) == "" {
		return "", fmt.Errorf("word cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an English pronunciation expert helping language learners. Answer with the IPA transcription only.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`Give the IPA transcription of the English word or phrase '%s'.
Use stress marks. Respond with only the transcription between slashes, for example: /ˈkʌp/`, word),
			},
		},
		Temperature: 0.1,
		MaxTokens:   60,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	ipa := NormalizeIPA(resp.Choices[0].Message.Content)
	if ipa == "" {
		return "", fmt.Errorf("no IPA transcription in response %q", resp.Choices[0].Message.Content)
	}
	return ipa, nil
}

var slashed = regexp.MustCompile(`/[^/\n]+/`)

// NormalizeIPA extracts a transcription from a model answer and wraps it in
// slashes. Square brackets and code quotes are stripped.
func NormalizeIPA(answer string) string {
	answer = strings.TrimSpace(answer)
	if m := slashed.FindString(answer); m != "" {
		return m
	}

	line, _, _ := strings.Cut(answer, "\n")
	line = strings.Trim(strings.TrimSpace(line), "`\"'[]")
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	return "/" + line + "/"
}
