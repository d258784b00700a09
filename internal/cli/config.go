package cli

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the merged configuration of flags, config file and environment.
type Config struct {
	Data        DataConfig        `mapstructure:"data"`
	Drill       DrillConfig       `mapstructure:"drill"`
	Speech      SpeechConfig      `mapstructure:"speech"`
	Translation TranslationConfig `mapstructure:"translation"`
	Enrich      EnrichConfig      `mapstructure:"enrich"`
	Export      ExportConfig      `mapstructure:"export"`
	Log         LogConfig         `mapstructure:"log"`
}

// DataConfig locates the word lists.
type DataConfig struct {
	Dir      string `mapstructure:"dir" validate:"required_without=Database"`
	Database string `mapstructure:"database"`
	Level    string `mapstructure:"level" validate:"required"`
	Units    string `mapstructure:"units"`
}

// DrillConfig tunes the practice session.
type DrillConfig struct {
	Mode          string        `mapstructure:"mode" validate:"oneof=review dictation listening"`
	MaxAttempts   int           `mapstructure:"max_attempts" validate:"min=1,max=10"`
	Shuffle       bool          `mapstructure:"shuffle"`
	Scramble      bool          `mapstructure:"scramble"`
	RespeakDelay  time.Duration `mapstructure:"respeak_delay" validate:"min=0"`
	FeedbackDelay time.Duration `mapstructure:"feedback_delay" validate:"min=0"`
	AdvanceDelay  time.Duration `mapstructure:"advance_delay" validate:"min=0"`
}

// SpeechConfig selects and tunes the speech provider.
type SpeechConfig struct {
	Provider          string  `mapstructure:"provider" validate:"oneof=espeak openai none"`
	Voice             string  `mapstructure:"voice"`
	ChineseVoice      string  `mapstructure:"chinese_voice"`
	Speed             int     `mapstructure:"speed" validate:"min=80,max=450"`
	Pitch             int     `mapstructure:"pitch" validate:"min=0,max=99"`
	Player            string  `mapstructure:"player"`
	CacheDir          string  `mapstructure:"cache_dir"`
	OpenAIKey         string  `mapstructure:"openai_key"`
	OpenAIModel       string  `mapstructure:"openai_model"`
	OpenAIVoice       string  `mapstructure:"openai_voice"`
	OpenAISpeed       float64 `mapstructure:"openai_speed" validate:"min=0.25,max=4"`
	OpenAIInstruction string  `mapstructure:"openai_instruction"`
}

// TranslationConfig configures meaning lookups.
type TranslationConfig struct {
	Provider    string `mapstructure:"provider" validate:"oneof=openai gemini"`
	Target      string `mapstructure:"target"`
	GeminiKey   string `mapstructure:"gemini_key"`
	GeminiModel string `mapstructure:"gemini_model"`
}

// EnrichConfig turns on lookups for missing word data.
type EnrichConfig struct {
	IPA      bool `mapstructure:"ipa"`
	Meanings bool `mapstructure:"meanings"`
}

// ExportConfig configures the missed-word export.
type ExportConfig struct {
	Missed string `mapstructure:"missed"`
	Deck   string `mapstructure:"deck"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=panic fatal error warn warning info debug trace"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// LoadConfig unmarshals and validates the configuration held by v. API
// keys in OPENAI_API_KEY and GEMINI_API_KEY win over the config file.
func LoadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Speech.OpenAIKey = openAIKey(v)
	cfg.Translation.GeminiKey = geminiKey(v)
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
