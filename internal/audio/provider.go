package audio

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Speaker speaks text aloud and returns once playback has finished.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Provider defines the interface for text-to-speech providers that render
// audio files.
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds the speech configuration.
type Config struct {
	Provider string // "espeak", "openai" or "none"
	CacheDir string // Directory for cached OpenAI audio, empty disables caching
	Player   string // Audio player command, empty picks one from PATH

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "echo", "fable", "nova", "onyx", "sage", "shimmer"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	ESpeak *ESpeakConfig
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "espeak",
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "alloy",
		OpenAISpeed:       0.9,
		OpenAIInstruction: "Pronounce the word clearly and a little slowly for a language learner. Read Chinese text in Mandarin.",
		ESpeak:            DefaultConfig(),
	}
}

// NewSpeaker builds the speaker chain for the configuration. The OpenAI
// speaker is guarded by a circuit breaker and falls back to espeak-ng when
// that is installed.
func NewSpeaker(config *Config, log logrus.FieldLogger) (Speaker, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	switch config.Provider {
	case "none":
		return NoopSpeaker{}, nil

	case "espeak":
		return New(config.ESpeak)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		provider, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		player, err := NewPlayer(config.Player)
		if err != nil {
			return nil, err
		}
		var speaker Speaker = NewBreakerSpeaker(NewPlaybackSpeaker(provider, player, config.CacheDir), log)

		espeak, err := New(config.ESpeak)
		if err != nil {
			log.WithError(err).Debug("espeak-ng unavailable, no speech fallback")
			return speaker, nil
		}
		return NewFallbackSpeaker(speaker, espeak, log), nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// NoopSpeaker discards all speech.
type NoopSpeaker struct{}

// Speak does nothing.
func (NoopSpeaker) Speak(context.Context, string) error { return nil }

// FallbackSpeaker wraps a primary speaker with a fallback option
type FallbackSpeaker struct {
	primary  Speaker
	fallback Speaker
	log      logrus.FieldLogger
}

// NewFallbackSpeaker creates a speaker that falls back to secondary if primary fails
func NewFallbackSpeaker(primary, fallback Speaker, log logrus.FieldLogger) *FallbackSpeaker {
	return &FallbackSpeaker{primary: primary, fallback: fallback, log: log}
}

// Speak tries the primary speaker first, falls back to secondary on error
func (s *FallbackSpeaker) Speak(ctx context.Context, text string) error {
	err := s.primary.Speak(ctx, text)
	if err == nil || ctx.Err() != nil {
		return err
	}
	s.log.WithError(err).Warn("primary speaker failed, falling back")
	return s.fallback.Speak(ctx, text)
}
