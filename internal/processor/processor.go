package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/vocadrill/internal"
	"codeberg.org/snonux/vocadrill/internal/anki"
	"codeberg.org/snonux/vocadrill/internal/audio"
	"codeberg.org/snonux/vocadrill/internal/cli"
	"codeberg.org/snonux/vocadrill/internal/drill"
	"codeberg.org/snonux/vocadrill/internal/logging"
	"codeberg.org/snonux/vocadrill/internal/phonetic"
	"codeberg.org/snonux/vocadrill/internal/translation"
	"codeberg.org/snonux/vocadrill/internal/wordlist"
)

// Deps are the collaborators of a Processor. Nil fields get harmless
// defaults: no speech, no lookups, stdin and stdout.
type Deps struct {
	Source     wordlist.Source
	Speaker    audio.Speaker
	Phonetic   PhoneticFetcher
	Translator Translator
	In         io.Reader
	Out        io.Writer
	Rand       *rand.Rand
	Logger     logrus.FieldLogger
	NoColor    bool
	Now        func() time.Time
	Closers    []io.Closer
}

// Processor runs an interactive drill in the terminal. It owns one
// drill.Session and feeds it the words of the current level.
type Processor struct {
	cfg        *cli.Config
	log        logrus.FieldLogger
	manager    *wordlist.Manager
	session    *drill.Session
	speaker    audio.Speaker
	phonetic   PhoneticFetcher
	translator Translator
	in         io.Reader
	render     *Renderer
	sched      *Scheduler
	now        func() time.Time
	closers    []io.Closer

	enriched map[string]bool
	tags     map[*drill.Word]string
}

// New creates a processor from a validated configuration.
func New(cfg *cli.Config, deps Deps) (*Processor, error) {
	mode, err := drill.ParseMode(cfg.Drill.Mode)
	if err != nil {
		return nil, err
	}
	if deps.Source == nil {
		return nil, fmt.Errorf("no word source configured")
	}

	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}
	if deps.Speaker == nil {
		deps.Speaker = audio.NoopSpeaker{}
	}
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	session := drill.NewSession(drill.Config{
		Mode:          mode,
		MaxAttempts:   cfg.Drill.MaxAttempts,
		RespeakDelay:  cfg.Drill.RespeakDelay,
		FeedbackDelay: cfg.Drill.FeedbackDelay,
		AdvanceDelay:  cfg.Drill.AdvanceDelay,
		Shuffle:       cfg.Drill.Shuffle,
		Scramble:      cfg.Drill.Scramble,
		Rand:          deps.Rand,
		Logger:        log,
	})

	p := &Processor{
		cfg:      cfg,
		log:      log.WithField("session", session.ID().String()),
		manager:  wordlist.NewManager(deps.Source, log),
		session:  session,
		speaker:  deps.Speaker,
		in:       deps.In,
		render:   NewRenderer(deps.Out, deps.Rand, deps.NoColor),
		sched:    NewScheduler(log),
		now:      deps.Now,
		closers:  deps.Closers,
		enriched: make(map[string]bool),
		tags:     make(map[*drill.Word]string),
	}
	if cfg.Enrich.IPA {
		p.phonetic = deps.Phonetic
	}
	if cfg.Enrich.Meanings {
		p.translator = deps.Translator
	}
	return p, nil
}

// NewProcessor wires the real word source, speech and lookup services for
// cfg and returns a processor reading stdin and writing stdout.
func NewProcessor(ctx context.Context, cfg *cli.Config, log *logrus.Logger) (*Processor, error) {
	if log == nil {
		log = logging.Discard()
	}
	deps := Deps{Logger: log}

	if cfg.Data.Database != "" {
		db, err := wordlist.OpenSQLite(cfg.Data.Database)
		if err != nil {
			return nil, err
		}
		deps.Source = db
		deps.Closers = append(deps.Closers, db)
	} else {
		deps.Source = wordlist.NewDataDirSource(cfg.Data.Dir)
	}

	speaker, err := audio.NewSpeaker(AudioConfig(cfg), log)
	if err != nil {
		log.WithError(err).Warn("speech unavailable, continuing without audio")
		speaker = audio.NoopSpeaker{}
	}
	deps.Speaker = speaker

	if cfg.Enrich.IPA {
		deps.Phonetic = phonetic.NewFetcher(cfg.Speech.OpenAIKey)
	}
	if cfg.Enrich.Meanings {
		tr, err := translation.New(ctx, translation.Config{
			Provider:    cfg.Translation.Provider,
			OpenAIKey:   cfg.Speech.OpenAIKey,
			GeminiKey:   cfg.Translation.GeminiKey,
			GeminiModel: cfg.Translation.GeminiModel,
			Target:      cfg.Translation.Target,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set up translation: %w", err)
		}
		deps.Translator = tr
	}

	return New(cfg, deps)
}

// AudioConfig converts the speech settings into an audio configuration.
func AudioConfig(cfg *cli.Config) *audio.Config {
	ac := audio.DefaultProviderConfig()
	ac.Provider = cfg.Speech.Provider
	ac.CacheDir = cfg.Speech.CacheDir
	ac.Player = cfg.Speech.Player
	ac.OpenAIKey = cfg.Speech.OpenAIKey
	if cfg.Speech.OpenAIModel != "" {
		ac.OpenAIModel = cfg.Speech.OpenAIModel
	}
	if cfg.Speech.OpenAIVoice != "" {
		ac.OpenAIVoice = cfg.Speech.OpenAIVoice
	}
	if cfg.Speech.OpenAISpeed != 0 {
		ac.OpenAISpeed = cfg.Speech.OpenAISpeed
	}
	if cfg.Speech.OpenAIInstruction != "" {
		ac.OpenAIInstruction = cfg.Speech.OpenAIInstruction
	}
	if cfg.Speech.Voice != "" {
		ac.ESpeak.Voice = cfg.Speech.Voice
	}
	if cfg.Speech.ChineseVoice != "" {
		ac.ESpeak.ChineseVoice = cfg.Speech.ChineseVoice
	}
	if cfg.Speech.Speed != 0 {
		ac.ESpeak.Speed = cfg.Speech.Speed
	}
	ac.ESpeak.Pitch = cfg.Speech.Pitch
	return ac
}

// Session returns the drill session.
func (p *Processor) Session() *drill.Session { return p.session }

// Level returns the current level, or nil.
func (p *Processor) Level() *wordlist.Level { return p.manager.Current() }

// Close releases the word source.
func (p *Processor) Close() error {
	var errs []error
	for _, c := range p.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Start loads the configured level, selects its units and presents the
// first word.
func (p *Processor) Start(ctx context.Context) error {
	p.render.Status("vocadrill %s. Type :help for commands.", internal.Version)

	lvl, err := p.loadLevel(ctx, p.cfg.Data.Level)
	if err != nil {
		return err
	}
	if err := ApplyUnitSelection(lvl, p.cfg.Data.Units); err != nil {
		return fmt.Errorf("invalid unit selection %q: %w", p.cfg.Data.Units, err)
	}
	p.setWords(ctx)
	return nil
}

// Run starts the drill and then reads answers and commands until :quit, end
// of input or cancellation.
func (p *Processor) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	return p.Loop(ctx)
}

// Loop reads input lines into Handle. Missed words are exported on the way
// out when an export path is configured.
func (p *Processor) Loop(ctx context.Context) error {
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(p.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			quit, err := p.Handle(ctx, line)
			if err != nil && !errors.Is(err, context.Canceled) {
				runErr = err
				break loop
			}
			if quit {
				break loop
			}
		}
	}

	if err := p.ExportMissed(); err != nil {
		p.render.Error("Export failed: %v", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// Handle processes one input line. It reports whether the learner asked to quit.
func (p *Processor) Handle(ctx context.Context, line string) (bool, error) {
	if cmd, ok := ParseCommand(line); ok {
		return p.command(ctx, cmd)
	}
	return false, p.answer(ctx, line)
}

func (p *Processor) answer(ctx context.Context, input string) error {
	out := p.session.Submit(input)
	p.log.WithFields(logrus.Fields{"result": out.Result.String(), "attempts": out.Attempts}).Debug("answer checked")

	switch out.Result {
	case drill.ResultNoWord:
		p.render.Status("No words left. Use :units, :level or :mode to practise again.")
	case drill.ResultInputDisabled:
		p.render.Status("This word cannot be answered in %s mode. Type :next to skip.", p.session.Mode().Title())
	case drill.ResultLocked:
		p.render.Status("Answer revealed. Type :next to continue.")
	case drill.ResultCorrect:
		p.speak(ctx, p.render.Congratulate())
	case drill.ResultIncorrect:
		p.render.Miss(input)
		p.speak(ctx, fmt.Sprintf("Uh-oh, %s, try again", out.Word.Text))
		if p.session.Mode().CountsAttempts() {
			p.render.Status("Attempts remaining: %d", out.MaxAttempts-out.Attempts)
		}
	case drill.ResultRevealed:
		p.render.Reveal(input, out.Word)
	}

	return p.sched.Run(ctx, out.Actions, func(a drill.Action) {
		p.perform(ctx, a, out.Signal)
	})
}

func (p *Processor) perform(ctx context.Context, a drill.Action, sig drill.Signal) {
	switch a.Kind {
	case drill.ActionRespeak:
		p.speak(ctx, a.Text)
	case drill.ActionPresentNext:
		p.after(ctx, sig)
	case drill.ActionClearInput, drill.ActionClearFeedback:
		// Terminal lines are not rewritten.
	}
}

func (p *Processor) command(ctx context.Context, c Command) (bool, error) {
	switch c.Name {
	case "quit", "q", "exit":
		return true, nil

	case "next", "n":
		sig, err := p.session.Next()
		if errors.Is(err, drill.ErrAnswerRequired) {
			p.render.Error("Answer the word first. :next only skips revealed or unanswerable words.")
			return false, nil
		}
		p.after(ctx, sig)

	case "mode":
		m, err := drill.ParseMode(c.Arg(0))
		if err != nil {
			p.render.Error("Unknown mode %q. Choose review, dictation or listening.", c.Arg(0))
			return false, nil
		}
		sig, err := p.session.SetMode(m)
		if err != nil {
			return false, err
		}
		p.render.Status("Mode: %s", m.Title())
		p.after(ctx, sig)

	case "shuffle", "scramble":
		on, err := ParseToggle(c.Arg(0))
		if err != nil {
			p.render.Error("Usage: :%s on|off", c.Name)
			return false, nil
		}
		if c.Name == "shuffle" {
			p.session.SetShuffleEnabled(on)
		} else {
			p.session.SetScrambleEnabled(on)
			if p.session.Mode() != drill.Review {
				p.render.Status("Scrambling only shows in review mode.")
			}
		}
		p.render.Status("%s %s", strings.ToUpper(c.Name[:1])+c.Name[1:], onOff(on))
		p.present(ctx)

	case "units", "u":
		lvl := p.manager.Current()
		if len(c.Args) == 0 {
			p.listUnits(lvl)
			return false, nil
		}
		if err := ApplyUnitSelection(lvl, strings.Join(c.Args, ",")); err != nil {
			p.render.Error("%v", err)
			return false, nil
		}
		p.setWords(ctx)

	case "level", "l":
		if c.Arg(0) == "" {
			p.render.Status("Level: %s", p.manager.Current().ID)
			return false, nil
		}
		if _, err := p.loadLevel(ctx, c.Arg(0)); err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			p.render.Error("%v", err)
			return false, nil
		}
		p.setWords(ctx)

	case "speak", "s":
		if pr := p.session.Present(); pr.Word != nil {
			p.speak(ctx, pr.Speak)
		}

	case "progress", "p":
		p.render.Status("%s", p.progressLine())

	case "missed":
		missed := p.session.Missed()
		if len(missed) == 0 {
			p.render.Status("No missed words yet.")
			return false, nil
		}
		for _, w := range missed {
			p.render.Status("  %s  %s", w.Text, w.Meaning)
		}

	case "help", "h", "?":
		for _, l := range helpLines {
			p.render.Status("%s", l)
		}

	default:
		p.render.Error("Unknown command :%s. Type :help for a list.", c.Name)
	}
	return false, nil
}

func (p *Processor) listUnits(lvl *wordlist.Level) {
	for _, u := range lvl.Units {
		mark := " "
		if lvl.IsSelected(u.Index) {
			mark = "x"
		}
		p.render.Status("[%s] %d %s (%d words)", mark, u.Number(), u.Name, len(u.Words))
	}
}

// loadLevel makes a level current and enriches it once. A failed enrichment
// switches back to the level that was current before.
func (p *Processor) loadLevel(ctx context.Context, id string) (*wordlist.Level, error) {
	prev := p.manager.Current()
	lvl, err := p.manager.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if lvl.ID != strings.TrimSpace(id) {
		p.render.Error("Level %s could not be loaded, using level %s instead.", id, lvl.ID)
	}

	if !p.enriched[lvl.ID] {
		for _, u := range lvl.Units {
			for _, w := range u.Words {
				p.tags[w] = lvl.ID + "::" + u.Name
			}
		}
		if p.phonetic != nil || p.translator != nil {
			stats, err := Enrich(ctx, lvl.AllWords(), p.phonetic, p.translator, p.log)
			if err != nil {
				if prev != nil {
					p.manager.SetCurrent(prev.ID)
				}
				return nil, err
			}
			p.render.Status("Looked up %d IPA transcriptions and %d meanings (%d failed).", stats.IPA, stats.Meanings, stats.Failed)
		}
		p.enriched[lvl.ID] = true
	}
	return lvl, nil
}

// setWords hands the selected words of the current level to the session.
func (p *Processor) setWords(ctx context.Context) {
	lvl := p.manager.Current()
	words := lvl.SelectedWords()
	sig := p.session.SetItems(words)
	// With no units the session may still have missed words to review.
	if _, ok := p.session.Current(); len(words) == 0 && (sig == drill.SignalAllCompleted || !ok) {
		p.render.Error("No units selected. Use :units to choose some.")
		return
	}
	p.render.Status("Level %s: %d words selected.", lvl.ID, len(words))
	p.after(ctx, sig)
}

// after announces a pass transition and shows the next word if there is one.
func (p *Processor) after(ctx context.Context, sig drill.Signal) {
	p.render.Signal(sig, p.session.PoolSize())
	switch sig {
	case drill.SignalReviewMastered, drill.SignalAllCompleted:
		p.render.Status("Use :units, :level or :mode to practise again, or :quit.")
	case drill.SignalNone, drill.SignalReviewStarted:
		p.present(ctx)
	}
}

func (p *Processor) present(ctx context.Context) {
	pr := p.session.Present()
	if pr.Word == nil {
		return
	}
	p.render.Status("%s", p.progressLine())
	p.render.Present(pr)
	p.speak(ctx, pr.Speak)
}

func (p *Processor) progressLine() string {
	lvl := p.manager.Current()
	return ProgressLine(lvl.ID, lvl.SelectedUnitNumbers(), p.session.Progress())
}

func (p *Processor) speak(ctx context.Context, text string) {
	if err := p.speaker.Speak(ctx, text); err != nil && ctx.Err() == nil {
		p.log.WithError(err).WithField("text", text).Warn("speech failed")
	}
}

// ExportMissed writes the missed words to the configured Anki CSV file. A
// path ending in a separator or naming a directory gets a generated file name.
func (p *Processor) ExportMissed() error {
	path := p.cfg.Export.Missed
	if path == "" {
		return nil
	}
	missed := p.session.Missed()
	if len(missed) == 0 {
		p.render.Status("No missed words to export.")
		return nil
	}

	if strings.HasSuffix(path, string(filepath.Separator)) || isDir(path) {
		levelID := wordlist.DefaultLevelID
		if lvl := p.manager.Current(); lvl != nil {
			levelID = lvl.ID
		}
		path = filepath.Join(path, internal.ExportFileName(levelID, p.now()))
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     path,
		IncludeHeaders: true,
		DeckName:       p.cfg.Export.Deck,
	})
	gen.AddWords(missed, func(w *drill.Word) string {
		if t, ok := p.tags[w]; ok {
			return t
		}
		return fmt.Sprintf("Unit %d", w.Unit+1)
	})
	if err := gen.GenerateCSV(); err != nil {
		return err
	}
	total, withIPA, withMeaning := gen.Stats()
	p.render.Status("Exported %d missed words to %s", total, path)
	p.log.WithFields(logrus.Fields{
		"words":        total,
		"with_ipa":     withIPA,
		"with_meaning": withMeaning,
		"path":         path,
	}).Info("missed words exported")
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
