package models

import (
	"bytes"
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

type fakeModels struct {
	ids []string
	err error
}

func (f fakeModels) ListModels(ctx context.Context) (openai.ModelsList, error) {
	if f.err != nil {
		return openai.ModelsList{}, f.err
	}
	var list openai.ModelsList
	for _, id := range f.ids {
		list.Models = append(list.Models, openai.Model{ID: id})
	}
	return list, nil
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}
	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	err := NewLister("").ListAvailableModels(context.Background(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	expectedError := "OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .vocadrill.yaml"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got: %v", expectedError, err)
	}
}

func TestFetch(t *testing.T) {
	client := fakeModels{ids: []string{
		"gpt-4o-mini", "tts-1-hd", "gpt-4o-mini-tts", "dall-e-3", "gpt-4o-audio-preview", "tts-1", "gpt-3.5-turbo", "whisper-1",
	}}

	c, err := NewLister("key").WithClient(client).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	wantSpeech := []string{"gpt-4o-mini-tts", "tts-1", "tts-1-hd"}
	wantChat := []string{"gpt-3.5-turbo", "gpt-4o-mini"}
	if !reflect.DeepEqual(c.Speech, wantSpeech) {
		t.Errorf("Speech = %v, want %v", c.Speech, wantSpeech)
	}
	if !reflect.DeepEqual(c.Chat, wantChat) {
		t.Errorf("Chat = %v, want %v", c.Chat, wantChat)
	}
}

func TestListAvailableModels(t *testing.T) {
	var buf bytes.Buffer
	client := fakeModels{ids: []string{"gpt-4o"}}

	if err := NewLister("key").WithClient(client).ListAvailableModels(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Available OpenAI Models:", "No TTS models found", "  gpt-4o\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListAvailableModels_APIError(t *testing.T) {
	client := fakeModels{err: errors.New("unauthorized")}
	err := NewLister("key").WithClient(client).ListAvailableModels(context.Background(), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "failed to list models") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	if err := NewLister(apiKey).ListAvailableModels(context.Background(), os.Stdout); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
