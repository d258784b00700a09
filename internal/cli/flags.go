package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	DataDir    string
	Database   string
	Level      string
	Units      string
	ListModels bool

	// Drill flags
	Mode        string
	MaxAttempts int
	Shuffle     bool
	Scramble    bool

	// Speech flags
	SpeechProvider string
	Voice          string
	Speed          int
	Player         string

	// OpenAI speech flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Enrichment and export
	FillIPA             bool
	FillMeanings        bool
	TranslationProvider string
	TargetLanguage      string
	ExportMissed        string

	// Logging
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Level:               "H",
		Units:               "all",
		Mode:                "review",
		MaxAttempts:         3,
		SpeechProvider:      "espeak",
		Voice:               "en-us",
		Speed:               130,
		OpenAIModel:         "gpt-4o-mini-tts",
		OpenAIVoice:         "alloy",
		OpenAISpeed:         0.9,
		TranslationProvider: "openai",
		TargetLanguage:      "Simplified Chinese",
		LogLevel:            "warn",
		LogFormat:           "text",
	}
}
