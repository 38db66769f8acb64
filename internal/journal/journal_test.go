package journal

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/dmflow/internal/nats"
	"github.com/mark3labs/dmflow/internal/preview"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/workflow"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	bus, err := nats.Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })
	return NewStore(bus.JS, bus.Stream)
}

func TestLoadState_Empty(t *testing.T) {
	store := setupStore(t)

	snap, err := store.LoadState(context.Background(), "draft", Options{Mode: trigger.ModeKeyword})
	require.NoError(t, err)
	require.Equal(t, 0, snap.Events)
	require.Equal(t, workflow.StepSelectContent, snap.State.Step)
	require.Equal(t, trigger.ModeKeyword, snap.State.Trigger.Mode)
	require.Equal(t, 0, snap.Preview.Len())
}

func TestRecordAndReplay(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	changes := []Change{
		Next(), // gated: no post yet
		SelectPost("5"),
		Next(),
		SetTriggerMode(trigger.ModeContains),
		SetTriggerPattern("interested"),
		Next(),
		SetReply("Thanks for your interest!"),
		GoLive(),
		AddComment(preview.Comment{ID: "c1", Text: "I'm interested", Author: "user123", At: at}),
		AddComment(preview.Comment{ID: "c2", Text: "meh", Author: "sarah.designs", At: at}),
	}
	for _, c := range changes {
		require.NoError(t, store.Record(ctx, "draft", c))
	}

	// Events of another workflow are not replayed
	require.NoError(t, store.Record(ctx, "other", SetReply("ignored")))

	snap, err := store.LoadState(ctx, "draft", Options{})
	require.NoError(t, err)
	require.Equal(t, len(changes), snap.Events)

	st := snap.State
	require.True(t, st.Live)
	require.Equal(t, workflow.StepComposeReply, st.Step)
	require.Equal(t, "automation_master", st.Post.Author)
	require.Equal(t, trigger.Trigger{Mode: trigger.ModeContains, Pattern: "interested"}, st.Trigger)
	require.Equal(t, "Thanks for your interest!", st.Reply)

	comments := snap.Preview.Comments()
	require.Len(t, comments, 2)
	require.Equal(t, "c2", comments[0].ID)
	require.Equal(t, at, comments[1].At)

	ex := snap.Preview.Exchanges(st)
	require.False(t, ex[0].Matched)
	require.True(t, ex[1].Matched)
}

func TestCommit(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	snap := NewSnapshot("mcp", Options{Mode: trigger.ModeExact})
	require.NoError(t, store.Commit(ctx, snap, SelectPost("1")))
	require.NoError(t, store.Commit(ctx, snap, Next()))
	require.Equal(t, workflow.StepConfigureTrigger, snap.State.Step)

	reloaded, err := store.LoadState(ctx, "mcp", Options{})
	require.NoError(t, err)
	require.Equal(t, snap.State.Step, reloaded.State.Step)
	require.Equal(t, snap.State.Post, reloaded.State.Post)
	require.Equal(t, 2, reloaded.Events)
}

func TestApply_IgnoresInvalidEvents(t *testing.T) {
	snap := NewSnapshot("draft", Options{})

	snap.Apply(Event{Type: nats.EventTypePost, Action: "select", Data: "404"})
	snap.Apply(Event{Type: nats.EventTypeTrigger, Action: "mode", Data: "regex"})
	snap.Apply(Event{Type: "unknown"})

	require.False(t, snap.State.HasPost())
	require.Equal(t, trigger.ModeExact, snap.State.Trigger.Mode)
	require.Equal(t, 3, snap.Events)
}

func TestApply_CommentFallsBackToEventFields(t *testing.T) {
	snap := NewSnapshot("draft", Options{})
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	snap.Apply(Event{ID: "ev1", Timestamp: at, Type: nats.EventTypeComment, Action: "add", Data: "hello"})

	c := snap.Preview.Comments()[0]
	require.Equal(t, "ev1", c.ID)
	require.Equal(t, at, c.At)
	require.Equal(t, "hello", c.Text)
}
