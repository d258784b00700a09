package drill

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultMaxAttempts is the number of misses that reveals the answer in
// Dictation and Listening.
const DefaultMaxAttempts = 3

// State is the pass-level state of a session.
type State int

const (
	StateNormal    State = iota + 1 // Working through the source words.
	StateReviewing                  // Working through the review queue.
	StateExhausted                  // Nothing left until new words are set.
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateReviewing:
		return "reviewing"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config tunes a session.
type Config struct {
	Mode          Mode
	MaxAttempts   int
	RespeakDelay  time.Duration // Before speaking a missed word again.
	FeedbackDelay time.Duration // Before clearing the miss feedback in Review.
	AdvanceDelay  time.Duration // Before presenting the next word after a hit.
	Shuffle       bool
	Scramble      bool
	Rand          *rand.Rand
	Logger        logrus.FieldLogger
}

// DefaultConfig returns the standard timings and limits.
func DefaultConfig() Config {
	return Config{
		Mode:          Review,
		MaxAttempts:   DefaultMaxAttempts,
		RespeakDelay:  1000 * time.Millisecond,
		FeedbackDelay: 1500 * time.Millisecond,
		AdvanceDelay:  1000 * time.Millisecond,
	}
}

// Presentation is what a renderer needs to show the current word.
type Presentation struct {
	Word          *Word
	Mode          Mode
	State         State
	Prompt        string
	ShowSyllables bool
	ShowMeaning   bool
	InputEnabled  bool
	Reviewing     bool
	Attempts      int
	MaxAttempts   int
	Speak         string
}

// Progress is a read-only snapshot for progress displays.
type Progress struct {
	Mode         Mode
	State        State
	TotalCorrect int
	Position     int
	PoolSize     int
	ReviewSize   int
	Reviewing    bool
	Attempts     int
	MaxAttempts  int
}

// Session owns one learner's practice state. It is not safe for concurrent use.
type Session struct {
	id  uuid.UUID
	cfg Config
	log logrus.FieldLogger
	rng *rand.Rand

	mode         Mode
	pool         *Pool
	review       *ReviewQueue
	source       []*Word
	missed       []*Word
	attempts     int
	locked       bool
	reviewing    bool
	totalCorrect int
	state        State
}

// NewSession creates a session with no words. Zero MaxAttempts and an invalid
// Mode fall back to the defaults.
func NewSession(cfg Config) *Session {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if !cfg.Mode.Valid() {
		cfg.Mode = Review
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	id := uuid.New()
	s := &Session{
		id:     id,
		cfg:    cfg,
		log:    log.WithField("session", id.String()),
		rng:    cfg.Rand,
		mode:   cfg.Mode,
		review: NewReviewQueue(),
		state:  StateExhausted,
	}
	s.pool = NewPool(s.rng, cfg.Shuffle, cfg.Scramble)
	if s.rng == nil {
		s.rng = s.pool.rng
	}
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// SetItems installs a new set of source words, as after a level or unit
// change. The pool is rebuilt, attempts are cleared and the review queue is
// kept. The returned signal reports an immediate pass transition.
func (s *Session) SetItems(items []*Word) Signal {
	s.source = append([]*Word(nil), items...)
	s.pool = NewPool(s.rng, s.pool.ShuffleEnabled(), s.pool.ScrambleEnabled())
	s.restart()
	s.log.WithField("words", len(items)).Debug("source words set")
	return s.resolve()
}

// SetMode switches the quiz mode and restarts the pass over the source
// words. totalCorrect resets, the review queue is kept. An invalid mode is
// rejected without touching any state.
func (s *Session) SetMode(m Mode) (Signal, error) {
	if !m.Valid() {
		return SignalNone, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	s.mode = m
	s.totalCorrect = 0
	s.restart()
	s.log.WithField("mode", m.String()).Debug("mode changed")
	return s.resolve(), nil
}

func (s *Session) restart() {
	s.pool.SetItems(s.source)
	s.attempts = 0
	s.locked = false
	s.reviewing = false
	s.state = StateNormal
}

// SetShuffleEnabled toggles shuffling of the active pool.
func (s *Session) SetShuffleEnabled(enabled bool) {
	s.pool.SetShuffleEnabled(enabled)
}

// SetScrambleEnabled toggles scrambling of the active pool.
func (s *Session) SetScrambleEnabled(enabled bool) {
	s.pool.SetScrambleEnabled(enabled)
}

// Current returns the word being practised, or false when none is left.
func (s *Session) Current() (*Word, bool) {
	return s.pool.Current()
}

// Present describes the current word for a renderer.
func (s *Session) Present() Presentation {
	p := Presentation{
		Mode:        s.mode,
		State:       s.state,
		Reviewing:   s.reviewing,
		Attempts:    s.attempts,
		MaxAttempts: s.cfg.MaxAttempts,
	}
	w, ok := s.pool.Current()
	if !ok {
		return p
	}
	p.Word = w
	p.Speak = w.Text
	p.InputEnabled = s.answerable(w) && !s.locked

	switch s.mode {
	case Review:
		scramble := s.pool.ScrambleEnabled()
		p.Prompt = w.DisplayText(scramble)
		_, scrambled := w.ScrambledText()
		p.ShowSyllables = !(scramble && scrambled)
		p.ShowMeaning = true
	case Dictation:
		if w.HasPronunciation() {
			p.Prompt = w.Pronunciation
		} else {
			p.Prompt = "(Cannot use this mode: IPA missing for this word)"
		}
	case Listening:
		p.Prompt = ""
	}
	return p
}

// answerable reports whether w can be answered at all. Only dictation
// needs an IPA prompt.
func (s *Session) answerable(w *Word) bool {
	return s.mode != Dictation || w.HasPronunciation()
}

// Submit checks an answer for the current word and applies the resulting
// transition.
func (s *Session) Submit(input string) Outcome {
	w, ok := s.pool.Current()
	if !ok {
		return Outcome{Result: ResultNoWord, Input: input, Signal: SignalNone}
	}
	out := Outcome{
		Word:        w,
		Input:       input,
		Expected:    w.Expected(s.mode),
		MaxAttempts: s.cfg.MaxAttempts,
	}
	switch {
	case !s.answerable(w):
		out.Result = ResultInputDisabled
		return out
	case s.locked:
		out.Result = ResultLocked
		out.Attempts = s.attempts
		return out
	}

	if w.CheckAnswer(input, s.mode) {
		s.totalCorrect++
		if s.reviewing && s.review.Remove(w.Text) {
			s.log.WithField("word", w.Text).Debug("removed word from review queue")
		}
		s.moveOn()
		out.Result = ResultCorrect
		out.Actions = []Action{{Kind: ActionPresentNext, Delay: s.cfg.AdvanceDelay}}
		out.Signal = s.resolve()
		return out
	}

	if !s.reviewing && s.review.Add(w) {
		out.AddedToReview = true
		s.recordMiss(w)
		s.log.WithFields(logrus.Fields{"word": w.Text, "queued": s.review.Size()}).Debug("added word to review queue")
	}

	if !s.mode.CountsAttempts() {
		out.Result = ResultIncorrect
		out.Actions = []Action{
			{Kind: ActionClearInput},
			{Kind: ActionRespeak, Delay: s.cfg.RespeakDelay, Text: w.Text},
			{Kind: ActionClearFeedback, Delay: s.cfg.FeedbackDelay},
		}
		return out
	}

	s.attempts++
	out.Attempts = s.attempts
	if s.attempts >= s.cfg.MaxAttempts {
		s.locked = true
		out.Result = ResultRevealed
		out.Actions = []Action{{Kind: ActionClearInput}}
		s.log.WithField("word", w.Text).Debug("attempts exhausted, answer revealed")
		return out
	}
	out.Result = ResultIncorrect
	out.Actions = []Action{
		{Kind: ActionClearInput},
		{Kind: ActionRespeak, Delay: s.cfg.RespeakDelay, Text: w.Text},
	}
	return out
}

// Next moves past a word whose answer was revealed or that cannot be
// answered in the current mode. A word still open for answers yields
// ErrAnswerRequired. With no current word it re-evaluates the pass state.
func (s *Session) Next() (Signal, error) {
	w, ok := s.pool.Current()
	if !ok {
		return s.resolve(), nil
	}
	if !s.locked && s.answerable(w) {
		return SignalNone, ErrAnswerRequired
	}
	s.moveOn()
	return s.resolve(), nil
}

func (s *Session) moveOn() {
	s.pool.Advance()
	s.attempts = 0
	s.locked = false
}

// resolve applies the pass-level transitions once the pool runs out.
func (s *Session) resolve() Signal {
	if !s.pool.Exhausted() {
		if s.reviewing {
			s.state = StateReviewing
		} else {
			s.state = StateNormal
		}
		return SignalNone
	}

	if s.review.Size() > 0 {
		s.reviewing = true
		s.state = StateReviewing
		s.pool.SetItems(s.review.Drain())
		s.attempts = 0
		s.locked = false
		s.log.WithField("words", s.pool.Len()).Info("reviewing incorrect words")
		return SignalReviewStarted
	}

	s.state = StateExhausted
	if s.reviewing {
		s.reviewing = false
		s.review.Clear()
		s.log.Info("all incorrect words mastered")
		return SignalReviewMastered
	}
	s.log.Info("all words completed")
	return SignalAllCompleted
}

// Mode returns the current quiz mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the pass-level state.
func (s *Session) State() State { return s.state }

// Reviewing reports whether the review queue is the active pool.
func (s *Session) Reviewing() bool { return s.reviewing }

// Attempts returns the misses on the current word in counting modes.
func (s *Session) Attempts() int { return s.attempts }

// MaxAttempts returns the reveal threshold.
func (s *Session) MaxAttempts() int { return s.cfg.MaxAttempts }

// Locked reports whether input is locked after a reveal.
func (s *Session) Locked() bool { return s.locked }

// TotalCorrect returns the correct answers since the last mode change.
func (s *Session) TotalCorrect() int { return s.totalCorrect }

// PoolSize returns the number of words in the active pool.
func (s *Session) PoolSize() int { return s.pool.Len() }

// Position returns the cursor in the active pool.
func (s *Session) Position() int { return s.pool.Cursor() }

// ReviewSize returns the number of words waiting for review.
func (s *Session) ReviewSize() int { return s.review.Size() }

// ShuffleEnabled reports the pool's shuffle flag.
func (s *Session) ShuffleEnabled() bool { return s.pool.ShuffleEnabled() }

// ScrambleEnabled reports the pool's scramble flag.
func (s *Session) ScrambleEnabled() bool { return s.pool.ScrambleEnabled() }

func (s *Session) recordMiss(w *Word) {
	for _, m := range s.missed {
		if strings.EqualFold(m.Text, w.Text) {
			return
		}
	}
	s.missed = append(s.missed, w)
}

// Missed returns every word that entered the review queue during this
// session, in the order they were first missed.
func (s *Session) Missed() []*Word {
	return append([]*Word(nil), s.missed...)
}

// Progress returns a snapshot of the counters.
func (s *Session) Progress() Progress {
	return Progress{
		Mode:         s.mode,
		State:        s.state,
		TotalCorrect: s.totalCorrect,
		Position:     s.pool.Cursor(),
		PoolSize:     s.pool.Len(),
		ReviewSize:   s.review.Size(),
		Reviewing:    s.reviewing,
		Attempts:     s.attempts,
		MaxAttempts:  s.cfg.MaxAttempts,
	}
}
