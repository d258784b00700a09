package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vocadrill/internal"
	"codeberg.org/snonux/vocadrill/internal/wordlist"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vocadrill",
		Short: "Terminal vocabulary drill",
		Long: `vocadrill drills vocabulary from curated word lists in the terminal.

Words are grouped into levels and units. Three quiz modes are available:
review (type the word you see), dictation (type the word for the IPA
shown) and listening (type the meaning of the word you hear). Missed
words are queued and reviewed once the pass is complete.

Examples:
  vocadrill                            # Drill all units of level H
  vocadrill --level K --units 1,3      # Drill units 1 and 3 of level K
  vocadrill --mode dictation --fill-ipa
  vocadrill convert levelH.json words.db`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)
	rootCmd.AddCommand(newConvertCommand())

	return rootCmd
}

// DefaultDataDir is where level files are looked up when no directory is configured.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "vocadrill", "levels")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.vocadrill.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Word list flags
	cmd.Flags().StringVarP(&flags.DataDir, "data-dir", "d", DefaultDataDir(), "Directory with level<ID>.json or level<ID>.txt files")
	cmd.Flags().StringVar(&flags.Database, "db", "", "SQLite word database (overrides --data-dir)")
	cmd.Flags().StringVarP(&flags.Level, "level", "l", flags.Level, "Level to drill")
	cmd.Flags().StringVarP(&flags.Units, "units", "u", flags.Units, "Units to drill: all, none or a list like 1,3")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	// Drill flags
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", flags.Mode, "Quiz mode: review, dictation or listening")
	cmd.Flags().IntVar(&flags.MaxAttempts, "max-attempts", flags.MaxAttempts, "Misses before the answer is revealed (dictation, listening)")
	cmd.Flags().BoolVar(&flags.Shuffle, "shuffle", false, "Shuffle the words")
	cmd.Flags().BoolVar(&flags.Scramble, "scramble", false, "Scramble the letters of each word in review mode")

	// Speech flags
	cmd.Flags().StringVar(&flags.SpeechProvider, "speech", flags.SpeechProvider, "Speech provider: espeak, openai or none")
	cmd.Flags().StringVar(&flags.Voice, "voice", flags.Voice, "espeak-ng voice for English text")
	cmd.Flags().IntVar(&flags.Speed, "speed", flags.Speed, "espeak-ng speed in words per minute (80 to 450)")
	cmd.Flags().StringVar(&flags.Player, "player", "", "Audio player command for OpenAI speech (default: auto-detect)")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")

	// Enrichment and export flags
	cmd.Flags().BoolVar(&flags.FillIPA, "fill-ipa", false, "Look up missing IPA transcriptions before drilling")
	cmd.Flags().BoolVar(&flags.FillMeanings, "fill-meanings", false, "Translate words without a meaning before drilling")
	cmd.Flags().StringVar(&flags.TranslationProvider, "translator", flags.TranslationProvider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.TargetLanguage, "target-language", flags.TargetLanguage, "Language meanings are written in")
	cmd.Flags().StringVar(&flags.ExportMissed, "export-missed", "", "Write missed words to this Anki CSV file on exit")

	cmd.Flags().SetNormalizeFunc(underscoreToDash)
	cmd.PersistentFlags().SetNormalizeFunc(underscoreToDash)

	// Bind flags to viper
	bindFlagsToViper(cmd)
	setDefaults()
}

// underscoreToDash lets config-style names like --max_attempts work as flags.
func underscoreToDash(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("data.dir", cmd.Flags().Lookup("data-dir"))
	viper.BindPFlag("data.database", cmd.Flags().Lookup("db"))
	viper.BindPFlag("data.level", cmd.Flags().Lookup("level"))
	viper.BindPFlag("data.units", cmd.Flags().Lookup("units"))
	viper.BindPFlag("drill.mode", cmd.Flags().Lookup("mode"))
	viper.BindPFlag("drill.max_attempts", cmd.Flags().Lookup("max-attempts"))
	viper.BindPFlag("drill.shuffle", cmd.Flags().Lookup("shuffle"))
	viper.BindPFlag("drill.scramble", cmd.Flags().Lookup("scramble"))
	viper.BindPFlag("speech.provider", cmd.Flags().Lookup("speech"))
	viper.BindPFlag("speech.voice", cmd.Flags().Lookup("voice"))
	viper.BindPFlag("speech.speed", cmd.Flags().Lookup("speed"))
	viper.BindPFlag("speech.player", cmd.Flags().Lookup("player"))
	viper.BindPFlag("speech.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("speech.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("speech.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("speech.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.target", cmd.Flags().Lookup("target-language"))
	viper.BindPFlag("enrich.ipa", cmd.Flags().Lookup("fill-ipa"))
	viper.BindPFlag("enrich.meanings", cmd.Flags().Lookup("fill-meanings"))
	viper.BindPFlag("export.missed", cmd.Flags().Lookup("export-missed"))
}

// Keys that only come from the config file or the environment.
func setDefaults() {
	viper.SetDefault("speech.chinese_voice", "cmn")
	viper.SetDefault("speech.pitch", 50)
	viper.SetDefault("speech.cache_dir", "")
	viper.SetDefault("speech.openai_key", "")
	viper.SetDefault("translation.gemini_key", "")
	viper.SetDefault("translation.gemini_model", "gemini-2.0-flash")
	viper.SetDefault("drill.respeak_delay", "1s")
	viper.SetDefault("drill.feedback_delay", "1500ms")
	viper.SetDefault("drill.advance_delay", "1s")
	viper.SetDefault("export.deck", "Vocadrill")
}

func newConvertCommand() *cobra.Command {
	var levelID string
	cmd := &cobra.Command{
		Use:   "convert <input> <output.db>",
		Short: "Store a JSON or text level in the SQLite word database",
		Long: `convert reads a level<ID>.json or plain text word list and writes it
into a SQLite word database, replacing a stored level with the same ID.
Without --level the ID comes from the JSON file or the level<ID>.txt name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := wordlist.Convert(cmd.Context(), args[0], args[1], levelID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored level %s (%d units) in %s\n", data.Level, len(data.Units), args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&levelID, "level", "l", "", "Level ID to store the list under")
	return cmd
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".vocadrill" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vocadrill")
	}

	// Environment variables, e.g. VOCADRILL_DRILL_MODE
	viper.SetEnvPrefix("VOCADRILL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	return openAIKey(viper.GetViper())
}

func openAIKey(v *viper.Viper) string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return v.GetString("speech.openai_key")
}

func geminiKey(v *viper.Viper) string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return v.GetString("translation.gemini_key")
}
