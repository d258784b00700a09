package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocadrill/internal/drill"
	"codeberg.org/snonux/vocadrill/internal/logging"
)

func TestScheduler_Order(t *testing.T) {
	s := NewScheduler(logging.Discard())
	actions := []drill.Action{
		{Kind: drill.ActionClearFeedback, Delay: 30 * time.Millisecond},
		{Kind: drill.ActionClearInput},
		{Kind: drill.ActionRespeak, Delay: 10 * time.Millisecond, Text: "cup"},
	}

	var got []drill.ActionKind
	start := time.Now()
	err := s.Run(context.Background(), actions, func(a drill.Action) {
		got = append(got, a.Kind)
	})

	require.NoError(t, err)
	assert.Equal(t, []drill.ActionKind{drill.ActionClearInput, drill.ActionRespeak, drill.ActionClearFeedback}, got)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, drill.ActionClearFeedback, actions[0].Kind, "input slice must not be reordered")
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler(logging.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var ran []drill.ActionKind
	err := s.Run(ctx, []drill.Action{
		{Kind: drill.ActionClearInput},
		{Kind: drill.ActionPresentNext, Delay: time.Minute},
	}, func(a drill.Action) { ran = append(ran, a.Kind) })

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []drill.ActionKind{drill.ActionClearInput}, ran)
}

func TestScheduler_Empty(t *testing.T) {
	s := NewScheduler(logging.Discard())
	assert.NoError(t, s.Run(context.Background(), nil, func(drill.Action) {
		t.Error("no action expected")
	}))
}
