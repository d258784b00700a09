package drill

import (
	"math/rand/v2"
	"strings"
)

// UnavailablePronunciation marks a word that has no IPA transcription.
const UnavailablePronunciation = "No IPA available"

// Record is a raw word entry as supplied by a word-list source.
type Record struct {
	Text          string
	Syllables     string
	Pronunciation string
	Meaning       string
}

// Word is a single vocabulary entry. Everything except the scrambled text is
// fixed at construction.
type Word struct {
	Text          string
	Syllables     string
	Pronunciation string
	Meaning       string
	Unit          int

	scrambled    string
	hasScrambled bool
}

// NewWord creates a word from a raw record. An empty pronunciation is replaced
// with UnavailablePronunciation.
func NewWord(rec Record, unit int) *Word {
	pron := strings.TrimSpace(rec.Pronunciation)
	if pron == "" {
		pron = UnavailablePronunciation
	}
	return &Word{
		Text:          rec.Text,
		Syllables:     rec.Syllables,
		Pronunciation: pron,
		Meaning:       rec.Meaning,
		Unit:          unit,
	}
}

// Scramble replaces the scrambled text with a fresh random permutation of the
// letters of each space-delimited token.
func (w *Word) Scramble() {
	w.scrambleWith(nil)
}

func (w *Word) scrambleWith(rng *rand.Rand) {
	tokens := strings.Split(w.Text, " ")
	for i, tok := range tokens {
		runes := []rune(tok)
		if len(runes) < 2 {
			continue
		}
		swap := func(a, b int) { runes[a], runes[b] = runes[b], runes[a] }
		if rng != nil {
			rng.Shuffle(len(runes), swap)
		} else {
			rand.Shuffle(len(runes), swap)
		}
		tokens[i] = string(runes)
	}
	w.scrambled = strings.Join(tokens, " ")
	w.hasScrambled = true
}

// ResetScramble drops the scrambled text.
func (w *Word) ResetScramble() {
	w.scrambled = ""
	w.hasScrambled = false
}

// ScrambledText returns the scrambled text and whether one is present.
func (w *Word) ScrambledText() (string, bool) {
	return w.scrambled, w.hasScrambled
}

// DisplayText returns the scrambled text when scrambling is on and one exists,
// otherwise the plain text.
func (w *Word) DisplayText(scramble bool) string {
	if scramble && w.hasScrambled {
		return w.scrambled
	}
	return w.Text
}

// HasPronunciation reports whether the word carries a usable IPA transcription.
func (w *Word) HasPronunciation() bool {
	return w.Pronunciation != "" && w.Pronunciation != UnavailablePronunciation
}

// Expected returns the answer a mode checks against.
func (w *Word) Expected(mode Mode) string {
	if mode == Listening {
		return w.Meaning
	}
	return w.Text
}

// CheckAnswer compares the trimmed, case-folded input with the expected answer
// for the mode under the same normalization.
func (w *Word) CheckAnswer(input string, mode Mode) bool {
	return normalize(input) == normalize(w.Expected(mode))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
