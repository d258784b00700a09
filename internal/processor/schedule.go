package processor

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/vocadrill/internal/drill"
)

// Scheduler performs the follow-up actions of a submission, each at its own
// delay measured from the call.
type Scheduler struct {
	log logrus.FieldLogger
}

// NewScheduler creates a scheduler.
func NewScheduler(log logrus.FieldLogger) *Scheduler {
	return &Scheduler{log: log}
}

// Run calls do for every action in delay order and blocks until the last
// one ran. It stops early with the context error when ctx is done.
func (s *Scheduler) Run(ctx context.Context, actions []drill.Action, do func(drill.Action)) error {
	start := time.Now()
	ordered := slices.Clone(actions)
	slices.SortStableFunc(ordered, func(a, b drill.Action) int {
		return cmp.Compare(a.Delay, b.Delay)
	})

	for _, a := range ordered {
		if wait := time.Until(start.Add(a.Delay)); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				s.log.WithField("action", a.Kind.String()).Debug("action cancelled")
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		do(a)
	}
	return nil
}
