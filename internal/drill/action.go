package drill

import (
	"fmt"
	"time"
)

// ActionKind names a follow-up the caller should perform after a submission.
type ActionKind int

const (
	ActionClearInput    ActionKind = iota + 1 // Empty the answer field.
	ActionClearFeedback                       // Remove the feedback line.
	ActionRespeak                             // Speak Action.Text again.
	ActionPresentNext                         // Show the new current word.
)

func (k ActionKind) String() string {
	switch k {
	case ActionClearInput:
		return "clear-input"
	case ActionClearFeedback:
		return "clear-feedback"
	case ActionRespeak:
		return "respeak"
	case ActionPresentNext:
		return "present-next"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is a pending, possibly delayed, UI step. The session never schedules
// it itself.
type Action struct {
	Kind  ActionKind
	Delay time.Duration
	Text  string
}

// Result classifies the outcome of a submission.
type Result int

const (
	ResultCorrect       Result = iota + 1 // Answer matched; cursor advanced.
	ResultIncorrect                       // Answer missed; same word stays.
	ResultRevealed                        // Attempts used up; answer shown, input locked.
	ResultLocked                          // Input is locked until Next.
	ResultInputDisabled                   // Word cannot be answered in this mode.
	ResultNoWord                          // Nothing left to answer.
)

func (r Result) String() string {
	switch r {
	case ResultCorrect:
		return "correct"
	case ResultIncorrect:
		return "incorrect"
	case ResultRevealed:
		return "revealed"
	case ResultLocked:
		return "locked"
	case ResultInputDisabled:
		return "input-disabled"
	case ResultNoWord:
		return "no-word"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Signal reports a pass-level transition caused by the last call.
type Signal int

const (
	SignalNone           Signal = iota // No pass transition.
	SignalReviewStarted                // The review queue became the active pool.
	SignalReviewMastered               // Every missed word was answered in review.
	SignalAllCompleted                 // The pool ran out with nothing to review.
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalReviewStarted:
		return "review-started"
	case SignalReviewMastered:
		return "review-mastered"
	case SignalAllCompleted:
		return "all-completed"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}

// Outcome describes what a submission did.
type Outcome struct {
	Result        Result
	Word          *Word
	Input         string
	Expected      string
	Attempts      int
	MaxAttempts   int
	AddedToReview bool
	Actions       []Action
	Signal        Signal
}
