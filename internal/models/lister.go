package models

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ModelClient is the part of the OpenAI client the lister needs.
type ModelClient interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Catalog groups model IDs by what vocadrill uses them for.
type Catalog struct {
	Speech []string // Text-to-speech models for the openai audio provider
	Chat   []string // Models usable for IPA lookup and translation
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client ModelClient
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// WithClient replaces the API client.
func (l *Lister) WithClient(client ModelClient) *Lister {
	l.client = client
	return l
}

// Fetch queries the API and sorts the models into a Catalog.
func (l *Lister) Fetch(ctx context.Context) (Catalog, error) {
	if l.apiKey == "" {
		return Catalog{}, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .vocadrill.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to list models: %w", err)
	}

	var c Catalog
	for _, model := range models.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(id, "audio"), strings.Contains(id, "realtime"):
			// Not usable by either provider.
		case strings.HasPrefix(id, "gpt-4"), strings.HasPrefix(id, "gpt-3.5"):
			c.Chat = append(c.Chat, id)
		}
	}
	slices.Sort(c.Speech)
	slices.Sort(c.Chat)
	return c, nil
}

// ListAvailableModels prints the catalog to w.
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	c, err := l.Fetch(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Available OpenAI Models:")
	printGroup(w, "Text-to-Speech (TTS) Models:", "No TTS models found", c.Speech)
	printGroup(w, "Chat Models (for IPA and meanings):", "No chat models found", c.Chat)
	return nil
}

func printGroup(w io.Writer, title, empty string, ids []string) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(ids) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
