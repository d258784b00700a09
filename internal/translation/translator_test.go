package translation

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

type fakeChat struct {
	answer string
	err    error
	calls  int
	last   openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.answer}}},
	}, nil
}

func TestNewOpenAITranslator(t *testing.T) {
	translator := NewOpenAITranslator("test-api-key", "")

	if translator == nil {
		t.Fatal("NewOpenAITranslator returned nil")
	}
	if translator.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", translator.apiKey)
	}
	if translator.client == nil {
		t.Error("OpenAI client not initialized")
	}
	if translator.target != DefaultTargetLanguage {
		t.Errorf("target = %q, want %q", translator.target, DefaultTargetLanguage)
	}
}

func TestTranslate_NoAPIKey(t *testing.T) {
	_, err := NewOpenAITranslator("", "").Translate(context.Background(), "cup")
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if err.Error() != "OpenAI API key not found" {
		t.Errorf("Expected 'OpenAI API key not found' error, got: %v", err)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		err     error
		want    string
		wantErr bool
	}{
		{"plain", "杯子", nil, "杯子", false},
		{"quoted", "\"烤箱\"", nil, "烤箱", false},
		{"multi line", "演员\n(actor)", nil, "演员", false},
		{"blank", "   ", nil, "", true},
		{"api error", "", errors.New("boom"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{answer: tt.answer, err: tt.err}
			got, err := NewOpenAITranslator("key", "German").WithClient(chat).Translate(context.Background(), "cup")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Translate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Translate() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(chat.last.Messages[0].Content, "German") {
				t.Errorf("prompt does not name the target language: %q", chat.last.Messages[0].Content)
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	p := Prompt("spatula", DefaultTargetLanguage)
	if !strings.Contains(p, "'spatula'") || !strings.Contains(p, DefaultTargetLanguage) {
		t.Errorf("unexpected prompt: %q", p)
	}
}

func TestTranslationCache(t *testing.T) {
	cache := NewTranslationCache()

	cache.Add("Cup", "杯子")
	cache.Add("oven", "烤箱")

	if got, ok := cache.Get("cup"); !ok || got != "杯子" {
		t.Errorf("Get(cup) = %q, %v", got, ok)
	}
	if _, ok := cache.Get("stove"); ok {
		t.Error("Get(stove) should miss")
	}

	want := map[string]string{"cup": "杯子", "oven": "烤箱"}
	if got := cache.GetAll(); !reflect.DeepEqual(got, want) {
		t.Errorf("GetAll() = %v, want %v", got, want)
	}
}

func TestCachedTranslator(t *testing.T) {
	chat := &fakeChat{answer: "杯子"}
	cached := NewCachedTranslator(NewOpenAITranslator("key", "").WithClient(chat))

	for i := 0; i < 3; i++ {
		got, err := cached.Translate(context.Background(), "cup")
		if err != nil {
			t.Fatal(err)
		}
		if got != "杯子" {
			t.Errorf("Translate() = %q", got)
		}
	}
	if chat.calls != 1 {
		t.Errorf("chat called %d times, want 1", chat.calls)
	}
	if len(cached.Cache().GetAll()) != 1 {
		t.Errorf("cache size = %d, want 1", len(cached.Cache().GetAll()))
	}
}

func TestCachedTranslator_ErrorNotCached(t *testing.T) {
	chat := &fakeChat{err: errors.New("offline")}
	cached := NewCachedTranslator(NewOpenAITranslator("key", "").WithClient(chat))

	if _, err := cached.Translate(context.Background(), "cup"); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := cached.Cache().Get("cup"); ok {
		t.Error("failed translation should not be cached")
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	if _, err := New(ctx, Config{Provider: "openai"}); err == nil {
		t.Error("expected error without OpenAI key")
	}
	if _, err := New(ctx, Config{Provider: "gemini"}); err == nil {
		t.Error("expected error without Gemini key")
	}
	if _, err := New(ctx, Config{Provider: "deepl", OpenAIKey: "k", GeminiKey: "k"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	tr, err := New(ctx, Config{OpenAIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*CachedTranslator); !ok {
		t.Errorf("New returned %T, want *CachedTranslator", tr)
	}
}

func TestTranslate_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	translation, err := NewOpenAITranslator(apiKey, "").Translate(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if translation == "" {
		t.Error("Got empty translation")
	}
	t.Logf("Translation of 'apple': %s", translation)
}

func TestGeminiTranslate_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	g, err := NewGeminiTranslator(context.Background(), apiKey, "", "")
	if err != nil {
		t.Fatal(err)
	}
	translation, err := g.Translate(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	t.Logf("Translation of 'apple': %s", translation)
}
