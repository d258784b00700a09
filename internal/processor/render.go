package processor

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"codeberg.org/snonux/vocadrill/internal/drill"
)

// Congratulations are picked at random after a correct answer.
var Congratulations = []string{
	"Good job!", "Excellent!", "Well done!", "Perfect!", "Amazing!",
	"做得好！", "太棒了！", "非常好！", "完美！", "加鸡腿", "真厉害！", "你真牛!", "太厉害了!",
}

// Renderer writes the drill transcript to the terminal.
type Renderer struct {
	out io.Writer
	rng *rand.Rand

	prompt *color.Color
	detail *color.Color
	good   *color.Color
	bad    *color.Color
	reveal *color.Color
	status *color.Color
}

// NewRenderer creates a renderer. With noColor set, no escape codes are written.
func NewRenderer(out io.Writer, rng *rand.Rand, noColor bool) *Renderer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	r := &Renderer{
		out:    out,
		rng:    rng,
		prompt: color.New(color.FgCyan, color.Bold),
		detail: color.New(color.FgWhite),
		good:   color.New(color.FgGreen, color.Bold),
		bad:    color.New(color.FgRed),
		reveal: color.New(color.FgYellow, color.Bold),
		status: color.New(color.FgBlue),
	}
	if noColor {
		for _, c := range []*color.Color{r.prompt, r.detail, r.good, r.bad, r.reveal, r.status} {
			c.DisableColor()
		}
	}
	return r
}

// Present shows the current word as the mode requires.
func (r *Renderer) Present(p drill.Presentation) {
	if p.Word == nil {
		return
	}
	switch p.Mode {
	case drill.Review:
		r.prompt.Fprintf(r.out, "Word: %s\n", p.Prompt)
		if p.ShowSyllables && p.Word.Syllables != "" {
			r.detail.Fprintf(r.out, "Syllables: %s\n", p.Word.Syllables)
		}
		if p.Word.HasPronunciation() {
			r.detail.Fprintf(r.out, "Pronunciation: %s\n", p.Word.Pronunciation)
		}
		if p.ShowMeaning && p.Word.Meaning != "" {
			r.detail.Fprintf(r.out, "Meaning: %s\n", p.Word.Meaning)
		}
	case drill.Dictation:
		r.prompt.Fprintf(r.out, "IPA: %s\n", p.Prompt)
	case drill.Listening:
		r.prompt.Fprintln(r.out, "Listen and type the meaning (:speak to hear it again)")
	}

	switch {
	case !p.InputEnabled:
		r.status.Fprintln(r.out, "Type :next to skip this word.")
	case p.Mode.CountsAttempts():
		r.status.Fprintf(r.out, "Attempts remaining: %d\n", p.MaxAttempts-p.Attempts)
	}
}

// Congratulate prints and returns a random congratulation.
func (r *Renderer) Congratulate() string {
	msg := Congratulations[r.rng.IntN(len(Congratulations))]
	r.good.Fprintln(r.out, msg)
	return msg
}

// Miss reports a wrong answer.
func (r *Renderer) Miss(input string) {
	r.bad.Fprintf(r.out, "Incorrect: %q. Try again.\n", input)
}

// Reveal shows the answer after the attempts ran out.
func (r *Renderer) Reveal(input string, w *drill.Word) {
	r.reveal.Fprintf(r.out, "Attempts exceeded! You typed %q. The correct word was: %s\n", input, w.Text)
	word := "Word: " + w.Text
	if w.HasPronunciation() {
		word += " " + w.Pronunciation
	}
	r.detail.Fprintln(r.out, word)
	if w.Meaning != "" {
		r.detail.Fprintf(r.out, "Meaning: %s\n", w.Meaning)
	} else {
		r.detail.Fprintln(r.out, "Meaning: Not available")
	}
	r.status.Fprintln(r.out, "Type :next to continue.")
}

// Signal announces a pass transition.
func (r *Renderer) Signal(sig drill.Signal, reviewSize int) {
	switch sig {
	case drill.SignalReviewStarted:
		r.reveal.Fprintf(r.out, "Review Mode: Practicing %d words you got wrong. Master them all!\n", reviewSize)
	case drill.SignalReviewMastered:
		r.good.Fprintln(r.out, "Great job! You have mastered all the words you previously got wrong!")
	case drill.SignalAllCompleted:
		r.good.Fprintln(r.out, "Congratulations! You have completed all units!")
	case drill.SignalNone:
	}
}

// Status prints a neutral line.
func (r *Renderer) Status(format string, args ...any) {
	r.status.Fprintf(r.out, format+"\n", args...)
}

// Error prints a problem the learner can fix.
func (r *Renderer) Error(format string, args ...any) {
	r.bad.Fprintf(r.out, format+"\n", args...)
}

// ProgressLine formats the progress display for a level, its selected unit
// numbers and a session snapshot.
func ProgressLine(levelID string, units []int, p drill.Progress) string {
	unitText := "No units selected"
	if len(units) > 0 {
		unitText = "Units: " + strings.Join(lo.Map(units, func(n int, _ int) string {
			return fmt.Sprint(n)
		}), ", ")
	}
	head := fmt.Sprintf("Level: %s | %s | Mode: %s", levelID, unitText, p.Mode.Title())

	if p.Reviewing {
		return fmt.Sprintf("%s | Reviewing incorrect words: %d / %d", head, p.PoolSize-p.Position, p.PoolSize)
	}

	line := fmt.Sprintf("%s | Progress: %d / %d", head, min(p.Position+1, p.PoolSize), p.PoolSize)
	if p.ReviewSize > 0 {
		line += fmt.Sprintf(" | Incorrect words: %d", p.ReviewSize)
	}
	return line
}
