package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// ESpeakConfig holds configuration for espeak-ng speech
type ESpeakConfig struct {
	Command      string // Binary name or path (default: espeak-ng)
	Voice        string // Voice for Latin text (e.g., "en-us", "en+f3")
	ChineseVoice string // Voice for text containing Chinese characters
	Speed        int    // Speech speed in words per minute (default: 130)
	Pitch        int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude    int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap      int    // Gap between words in 10ms units (default: 0)
}

// DefaultConfig returns the default configuration. Learner words are spoken
// a little slower than espeak's 175 wpm.
func DefaultConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Command:      "espeak-ng",
		Voice:        "en-us",
		ChineseVoice: "cmn",
		Speed:        130,
		Pitch:        50,
		Amplitude:    100,
		WordGap:      0,
	}
}

// ESpeak speaks text through the espeak-ng engine. It implements both
// Speaker and Provider.
type ESpeak struct {
	config *ESpeakConfig
}

// New creates a new ESpeak instance with the given configuration
func New(config *ESpeakConfig) (*ESpeak, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Command == "" {
		config.Command = "espeak-ng"
	}

	e := &ESpeak{config: config}
	if err := e.IsAvailable(); err != nil {
		return nil, err
	}
	return e, nil
}

// Speak plays the text on the default audio device.
func (e *ESpeak) Speak(ctx context.Context, text string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, e.config.Command, e.args(text, "")...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// GenerateAudio writes the spoken text to a WAV file.
func (e *ESpeak) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, e.config.Command, e.args(text, outputFile)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// args builds the espeak-ng command line. An empty outputFile plays the audio.
func (e *ESpeak) args(text, outputFile string) []string {
	args := []string{
		"-v", e.VoiceFor(text),
		"-s", strconv.Itoa(e.config.Speed),
		"-p", strconv.Itoa(e.config.Pitch),
		"-a", strconv.Itoa(e.config.Amplitude),
	}
	if e.config.WordGap > 0 {
		args = append(args, "-g", strconv.Itoa(e.config.WordGap))
	}
	if outputFile != "" {
		args = append(args, "-w", outputFile)
	}
	return append(args, text)
}

// VoiceFor picks the Chinese voice for text with Chinese characters and the
// default voice otherwise.
func (e *ESpeak) VoiceFor(text string) string {
	if ContainsHan(text) && e.config.ChineseVoice != "" {
		return e.config.ChineseVoice
	}
	return e.config.Voice
}

// Name returns the provider name
func (e *ESpeak) Name() string {
	return "espeak-ng"
}

// IsAvailable checks that the espeak binary can be run.
func (e *ESpeak) IsAvailable() error {
	if err := exec.Command(e.config.Command, "--version").Run(); err != nil {
		return fmt.Errorf("%s is not installed or not in PATH: %w", e.config.Command, err)
	}
	return nil
}
