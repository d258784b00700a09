package drill

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, mode Mode) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Mode = mode
	cfg.Rand = testRand()
	cfg.RespeakDelay = 0
	cfg.FeedbackDelay = 0
	cfg.AdvanceDelay = 0
	return NewSession(cfg)
}

func actionKinds(actions []Action) []ActionKind {
	out := make([]ActionKind, len(actions))
	for i, a := range actions {
		out[i] = a.Kind
	}
	return out
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(Config{})
	assert.Equal(t, Review, s.Mode())
	assert.Equal(t, DefaultMaxAttempts, s.MaxAttempts())
	assert.Equal(t, StateExhausted, s.State())
	assert.NotEqual(t, [16]byte{}, [16]byte(s.ID()))

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, ResultNoWord, s.Submit("anything").Result)
}

func TestSetItemsEmpty(t *testing.T) {
	s := newTestSession(t, Review)
	sig := s.SetItems(nil)
	assert.Equal(t, SignalAllCompleted, sig)
	assert.Equal(t, StateExhausted, s.State())
}

// Miss A, then hit A and B: the pass ends and A comes back for review.
func TestReviewMissThenReviewPass(t *testing.T) {
	s := newTestSession(t, Review)
	words := makeWords("apple", "bread")
	require.Equal(t, SignalNone, s.SetItems(words))

	out := s.Submit("appel")
	assert.Equal(t, ResultIncorrect, out.Result)
	assert.True(t, out.AddedToReview)
	assert.Equal(t, 1, s.ReviewSize())
	cur, _ := s.Current()
	assert.Equal(t, "apple", cur.Text, "cursor stays on a missed word")
	assert.Equal(t,
		[]ActionKind{ActionClearInput, ActionRespeak, ActionClearFeedback},
		actionKinds(out.Actions))
	assert.Equal(t, "apple", out.Actions[1].Text)

	out = s.Submit("apple")
	assert.Equal(t, ResultCorrect, out.Result)
	assert.Equal(t, 1, s.TotalCorrect())
	cur, _ = s.Current()
	assert.Equal(t, "bread", cur.Text)

	out = s.Submit("BREAD")
	assert.Equal(t, ResultCorrect, out.Result)
	assert.Equal(t, SignalReviewStarted, out.Signal)
	assert.Equal(t, StateReviewing, s.State())
	assert.True(t, s.Reviewing())
	assert.Equal(t, []string{"apple"}, texts(s.pool.Items()))
	assert.Equal(t, 0, s.Position())
}

func TestReviewMastered(t *testing.T) {
	s := newTestSession(t, Review)
	s.SetItems(makeWords("apple", "bread"))
	s.Submit("nope")
	s.Submit("apple")
	s.Submit("bread")
	require.True(t, s.Reviewing())

	out := s.Submit("wrong again")
	assert.Equal(t, ResultIncorrect, out.Result)
	assert.False(t, out.AddedToReview, "misses during review must not re-queue")
	assert.Equal(t, 1, s.ReviewSize())

	out = s.Submit("Apple")
	assert.Equal(t, ResultCorrect, out.Result)
	assert.Equal(t, SignalReviewMastered, out.Signal)
	assert.Equal(t, StateExhausted, s.State())
	assert.False(t, s.Reviewing())
	assert.Equal(t, 0, s.ReviewSize())
	assert.Equal(t, []string{"apple"}, texts(s.Missed()))
}

func TestAllCompletedWithoutMisses(t *testing.T) {
	s := newTestSession(t, Review)
	s.SetItems(makeWords("apple"))
	out := s.Submit("apple")
	assert.Equal(t, SignalAllCompleted, out.Signal)
	assert.Equal(t, StateExhausted, s.State())
	assert.Empty(t, s.Missed())
}

// Three misses in Dictation reveal the answer and lock input until Next.
func TestDictationRevealAfterMaxAttempts(t *testing.T) {
	s := newTestSession(t, Dictation)
	s.SetItems(makeWords("knife", "stove"))

	out := s.Submit("nife")
	assert.Equal(t, ResultIncorrect, out.Result)
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, []ActionKind{ActionClearInput, ActionRespeak}, actionKinds(out.Actions))

	s.Submit("knif")
	out = s.Submit("nive")
	assert.Equal(t, ResultRevealed, out.Result)
	assert.Equal(t, 3, out.Attempts)
	assert.Equal(t, "knife", out.Expected)
	assert.True(t, s.Locked())
	assert.False(t, s.Present().InputEnabled)

	out = s.Submit("knife")
	assert.Equal(t, ResultLocked, out.Result, "locked word ignores further answers")
	assert.Equal(t, 0, s.TotalCorrect())

	sig, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, SignalNone, sig)
	cur, _ := s.Current()
	assert.Equal(t, "stove", cur.Text)
	assert.Equal(t, 0, s.Attempts())
	assert.False(t, s.Locked())
}

func TestRevealedWordIsReviewedAgain(t *testing.T) {
	s := newTestSession(t, Dictation)
	s.SetItems(makeWords("knife"))
	for i := 0; i < 3; i++ {
		s.Submit("x")
	}
	sig, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, SignalReviewStarted, sig)

	for i := 0; i < 3; i++ {
		s.Submit("x")
	}
	sig, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, SignalReviewStarted, sig, "a word revealed in review stays queued for another pass")
	assert.Equal(t, 1, s.ReviewSize())

	out := s.Submit("knife")
	assert.Equal(t, SignalReviewMastered, out.Signal)
}

func TestNextRequiresAnswer(t *testing.T) {
	s := newTestSession(t, Dictation)
	s.SetItems(makeWords("knife"))
	s.Submit("x")

	_, err := s.Next()
	assert.True(t, errors.Is(err, ErrAnswerRequired))
	cur, _ := s.Current()
	assert.Equal(t, "knife", cur.Text)
}

func TestListeningChecksMeaning(t *testing.T) {
	s := newTestSession(t, Listening)
	s.SetItems([]*Word{NewWord(Record{Text: "cup", Meaning: "杯子", Pronunciation: "/kʌp/"}, 1)})

	p := s.Present()
	assert.Equal(t, "", p.Prompt)
	assert.Equal(t, "cup", p.Speak)

	out := s.Submit("cup")
	assert.Equal(t, ResultIncorrect, out.Result)
	assert.Equal(t, "杯子", out.Expected)

	out = s.Submit(" 杯子 ")
	assert.Equal(t, ResultCorrect, out.Result)
}

// A word without IPA cannot be answered in Dictation but is still current.
func TestDictationWithoutPronunciation(t *testing.T) {
	s := newTestSession(t, Dictation)
	bare := NewWord(Record{Text: "spatula", Meaning: "锅铲"}, 1)
	s.SetItems([]*Word{bare, makeWords("cup")[0]})

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Same(t, bare, cur)

	p := s.Present()
	assert.False(t, p.InputEnabled)
	assert.Contains(t, p.Prompt, "IPA missing")

	out := s.Submit("spatula")
	assert.Equal(t, ResultInputDisabled, out.Result)
	assert.Equal(t, 0, s.ReviewSize())

	_, err := s.Next()
	require.NoError(t, err)
	cur, _ = s.Current()
	assert.Equal(t, "cup", cur.Text)

	sig, err := s.SetMode(Review)
	require.NoError(t, err)
	assert.Equal(t, SignalNone, sig)
	assert.True(t, s.Present().InputEnabled)
}

func TestScrambleBeforeSetItems(t *testing.T) {
	s := newTestSession(t, Review)
	s.SetScrambleEnabled(true)
	words := makeWords("apple", "bread")
	s.SetItems(words)

	for _, w := range words {
		_, ok := w.ScrambledText()
		assert.True(t, ok, "%s should be scrambled", w.Text)
	}

	p := s.Present()
	assert.False(t, p.ShowSyllables)
	assert.True(t, p.ShowMeaning)
	scrambled, _ := words[0].ScrambledText()
	assert.Equal(t, scrambled, p.Prompt)

	assert.Equal(t, ResultCorrect, s.Submit("apple").Result, "answers are checked against the plain text")
}

func TestSetModeResetsCounters(t *testing.T) {
	s := newTestSession(t, Review)
	s.SetItems(makeWords("apple", "bread", "cheese"))
	s.Submit("apple")
	s.Submit("wrong")
	require.Equal(t, 1, s.TotalCorrect())
	require.Equal(t, 1, s.ReviewSize())

	sig, err := s.SetMode(Dictation)
	require.NoError(t, err)
	assert.Equal(t, SignalNone, sig)
	assert.Equal(t, Dictation, s.Mode())
	assert.Equal(t, 0, s.TotalCorrect())
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, 1, s.ReviewSize(), "review queue survives a mode change")
	assert.Equal(t, StateNormal, s.State())
}

// New source words mid-review end the review pass but keep the queue, which
// comes back once the new pass runs out.
func TestSetItemsDuringReview(t *testing.T) {
	s := newTestSession(t, Review)
	s.SetItems(makeWords("apple", "bread"))
	s.Submit("nope")
	s.Submit("apple")
	s.Submit("bread")
	require.True(t, s.Reviewing())
	require.Equal(t, StateReviewing, s.State())

	sig := s.SetItems(makeWords("cheese"))
	assert.Equal(t, SignalNone, sig)
	assert.False(t, s.Reviewing())
	assert.Equal(t, StateNormal, s.State())
	assert.Equal(t, 1, s.ReviewSize(), "review queue survives new source words")
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "cheese", cur.Text)

	out := s.Submit("cheese")
	assert.Equal(t, SignalReviewStarted, out.Signal)
	assert.True(t, s.Reviewing())
	assert.Equal(t, StateReviewing, s.State())
	assert.Equal(t, []string{"apple"}, texts(s.pool.Items()))
}

func TestSetModeDuringReview(t *testing.T) {
	s := newTestSession(t, Review)
	s.SetItems(makeWords("apple", "bread"))
	s.Submit("nope")
	s.Submit("apple")
	s.Submit("bread")
	require.True(t, s.Reviewing())

	sig, err := s.SetMode(Listening)
	require.NoError(t, err)
	assert.Equal(t, SignalNone, sig)
	assert.False(t, s.Reviewing())
	assert.Equal(t, StateNormal, s.State())
	assert.Equal(t, 1, s.ReviewSize())
	assert.Equal(t, []string{"apple", "bread"}, texts(s.pool.Items()), "the pass restarts over the source words")

	assert.Equal(t, ResultCorrect, s.Submit("m-apple").Result)
	assert.Equal(t, 1, s.ReviewSize(), "a hit outside review leaves the queue alone")
	out := s.Submit("m-bread")
	assert.Equal(t, SignalReviewStarted, out.Signal)
	assert.True(t, s.Reviewing())
	assert.Equal(t, []string{"apple"}, texts(s.pool.Items()))
}

// With shuffle on, the promoted review pool goes through the same shuffle
// as any other pool.
func TestReviewPoolIsShuffled(t *testing.T) {
	src := rand.NewPCG(7, 11)
	cfg := DefaultConfig()
	cfg.Shuffle = true
	cfg.Rand = rand.New(src)
	cfg.RespeakDelay = 0
	cfg.FeedbackDelay = 0
	cfg.AdvanceDelay = 0
	s := NewSession(cfg)
	words := makeWords("apple", "bread", "cheese", "dates", "eggs", "flour", "grapes", "honey")
	require.Equal(t, SignalNone, s.SetItems(words))

	var missed []*Word
	var state []byte
	for i := range words {
		cur, ok := s.Current()
		require.True(t, ok)
		require.True(t, s.Submit("nope").AddedToReview)
		missed = append(missed, cur)
		if i == len(words)-1 {
			var err error
			state, err = src.MarshalBinary()
			require.NoError(t, err)
		}
		out := s.Submit(cur.Text)
		require.Equal(t, ResultCorrect, out.Result)
		if i == len(words)-1 {
			require.Equal(t, SignalReviewStarted, out.Signal)
		}
	}

	// Replay the generator from just before the promotion.
	replay := &rand.PCG{}
	require.NoError(t, replay.UnmarshalBinary(state))
	want := NewPool(rand.New(replay), true, false)
	want.SetItems(missed)

	got := texts(s.pool.Items())
	assert.ElementsMatch(t, texts(missed), got)
	assert.Equal(t, texts(want.Items()), got)
}

func TestSetModeInvalid(t *testing.T) {
	s := newTestSession(t, Listening)
	s.SetItems(makeWords("apple", "bread"))
	s.Submit("x")
	before := s.Progress()

	_, err := s.SetMode(Mode(42))
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, before, s.Progress())
}

func TestProgressSnapshot(t *testing.T) {
	s := newTestSession(t, Dictation)
	s.SetItems(makeWords("apple", "bread", "cheese"))
	s.Submit("apple")
	s.Submit("bred")

	p := s.Progress()
	assert.Equal(t, Progress{
		Mode:         Dictation,
		State:        StateNormal,
		TotalCorrect: 1,
		Position:     1,
		PoolSize:     3,
		ReviewSize:   1,
		Attempts:     1,
		MaxAttempts:  DefaultMaxAttempts,
	}, p)
}

func TestMissedIsUnique(t *testing.T) {
	s := newTestSession(t, Review)
	s.SetItems(makeWords("apple"))
	s.Submit("x")
	s.Submit("apple")
	s.Submit("apple")

	s.SetItems(makeWords("apple"))
	s.Submit("x")
	assert.Len(t, s.Missed(), 1)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "reviewing", StateReviewing.String())
	assert.Equal(t, "respeak", ActionRespeak.String())
	assert.Equal(t, "revealed", ResultRevealed.String())
	assert.Equal(t, "review-mastered", SignalReviewMastered.String())
	assert.Equal(t, "Signal(99)", Signal(99).String())
}
