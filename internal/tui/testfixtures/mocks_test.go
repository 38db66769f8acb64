package testfixtures

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mark3labs/dmflow/internal/journal"
	"github.com/stretchr/testify/require"
)

func TestMockRecorder_Record(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := NewMockRecorder()

	require.NoError(t, rec.Record(ctx, "wf", journal.SelectPost("1")))
	require.NoError(t, rec.Record(ctx, "wf", journal.Next()))

	require.Equal(t, []string{"post/select", "step/next"}, rec.Actions())
	require.Equal(t, []string{"wf", "wf"}, rec.Workflows())
	require.Equal(t, "1", rec.Changes()[0].Data)

	rec.Reset()
	require.Empty(t, rec.Changes())
}

func TestMockRecorder_RecordError(t *testing.T) {
	t.Parallel()

	rec := NewMockRecorder()
	rec.RecordError = errors.New("stream unavailable")

	err := rec.Record(context.Background(), "wf", journal.GoLive())
	require.EqualError(t, err, "stream unavailable")
	require.Empty(t, rec.Changes())
}

func TestMockRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	rec := NewMockRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.Record(context.Background(), "wf", journal.Next())
		}()
	}
	wg.Wait()
	require.Len(t, rec.Changes(), 10)
}

func TestKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"a", "enter", "tab", "shift+tab", "esc", "ctrl+f", "alt+1", "alt+t", "up", "space"} {
		require.Equal(t, key, Key(key).String())
	}
}

func TestType(t *testing.T) {
	t.Parallel()

	msgs := Type("hi you")
	require.Len(t, msgs, 6)
	require.Equal(t, "h", msgs[0].String())
	require.Equal(t, "space", msgs[2].String())
}

func TestFixtures(t *testing.T) {
	t.Parallel()

	require.False(t, EmptyState().HasPost())
	require.True(t, StateWithPost().CanProceed())

	ready := ReadyState()
	require.True(t, ready.CanGoLive())
	require.False(t, ready.Live)
	require.True(t, LiveState().Live)
}
