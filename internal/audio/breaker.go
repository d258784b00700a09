package audio

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerSpeaker stops calling a failing speaker for a while. After three
// consecutive failures the breaker opens for 30 seconds and calls fail fast
// with gobreaker.ErrOpenState.
type BreakerSpeaker struct {
	next Speaker
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSpeaker wraps next with a circuit breaker.
func NewBreakerSpeaker(next Speaker, log logrus.FieldLogger) *BreakerSpeaker {
	return newBreakerSpeaker(next, log, 30*time.Second)
}

func newBreakerSpeaker(next Speaker, log logrus.FieldLogger, timeout time.Duration) *BreakerSpeaker {
	settings := gobreaker.Settings{
		Name:        "speech",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("speech circuit breaker changed state")
			}
		},
	}
	return &BreakerSpeaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

// Speak forwards to the wrapped speaker unless the breaker is open.
func (s *BreakerSpeaker) Speak(ctx context.Context, text string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		err := s.next.Speak(ctx, text)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	})
	return err
}

// State returns the breaker state.
func (s *BreakerSpeaker) State() gobreaker.State {
	return s.cb.State()
}
