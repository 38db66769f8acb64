package preview

import (
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/workflow"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock that can be advanced by tests.
func fixedClock() (func() time.Time, func(time.Duration)) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func configured(t *testing.T, mode trigger.Mode, pattern, message string) workflow.State {
	t.Helper()
	p, err := workflow.FindPost("5")
	require.NoError(t, err)
	return workflow.New(mode).SelectPost(p).SetTriggerPattern(pattern).SetReplyMessage(message)
}

func TestSubmit_IgnoresBlank(t *testing.T) {
	sim := New(Options{})

	for _, input := range []string{"", "   ", "\n\t"} {
		_, ok := sim.Submit(input)
		require.False(t, ok, "input %q", input)
	}
	require.Equal(t, 0, sim.Len())
}

func TestSubmit_PrependsAndRotatesAuthors(t *testing.T) {
	now, _ := fixedClock()
	sim := New(Options{Authors: []string{"a", "b"}, Now: now})

	first, ok := sim.Submit("one")
	require.True(t, ok)
	second, _ := sim.Submit("two")
	third, _ := sim.Submit("three")

	require.Equal(t, "a", first.Author)
	require.Equal(t, "b", second.Author)
	require.Equal(t, "a", third.Author)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, now(), first.At)

	comments := sim.Comments()
	require.Len(t, comments, 3)
	require.Equal(t, "three", comments[0].Text)
	require.Equal(t, "one", comments[2].Text)
}

func TestExchanges_ReevaluatedAgainstCurrentTrigger(t *testing.T) {
	sim := New(Options{})
	sim.Submit("i am interested!")
	sim.Submit("I need this")

	state := configured(t, trigger.ModeContains, "interested", "Thanks!")
	ex := sim.Exchanges(state)
	require.Len(t, ex, 2)
	require.False(t, ex[0].Matched) // "I need this"
	require.True(t, ex[1].Matched)
	require.Equal(t, "Thanks!", ex[1].Reply)

	// Changing the trigger changes which historical comments get a reply
	state = state.SetTriggerMode(trigger.ModeKeyword).SetTriggerPattern("want, need")
	ex = sim.Exchanges(state)
	require.True(t, ex[0].Matched)
	require.False(t, ex[1].Matched)

	state = state.SetTriggerMode(trigger.ModeExact).SetTriggerPattern("interested")
	for _, e := range sim.Exchanges(state) {
		require.False(t, e.Matched)
		require.Empty(t, e.Reply)
	}
}

func TestExchanges_UnconfiguredTriggerNeverFires(t *testing.T) {
	sim := New(Options{})
	sim.Submit("anything at all")

	state := configured(t, trigger.ModeContains, "", "Thanks!")
	require.False(t, sim.Exchanges(state)[0].Matched)
}

func TestExchanges_PlaceholdersLiteralByDefault(t *testing.T) {
	sim := New(Options{Authors: []string{"ada"}})
	sim.Submit("interested")

	state := configured(t, trigger.ModeExact, "interested", "Hi @{{username}}!")
	require.Equal(t, "Hi @{{username}}!", sim.Exchanges(state)[0].Reply)
}

func TestExchanges_Personalized(t *testing.T) {
	sim := New(Options{Authors: []string{"ada"}, Personalize: true})
	sim.Submit("Interested")

	state := configured(t, trigger.ModeExact, "interested", "Hi @{{username}}, re: {{comment}}")
	require.Equal(t, "Hi @ada, re: Interested", sim.Exchanges(state)[0].Reply)
}

func TestLabel(t *testing.T) {
	now, advance := fixedClock()
	sim := New(Options{Now: now})
	c, _ := sim.Submit("hello")

	require.Equal(t, "now", sim.Label(c))
	advance(2 * time.Minute)
	require.Equal(t, "2 minutes ago", sim.Label(c))
}

func TestTranscript(t *testing.T) {
	now, _ := fixedClock()
	sim := New(Options{Authors: []string{"user123"}, Now: now})
	state := configured(t, trigger.ModeContains, "interested", "Thanks!")

	require.Equal(t, "No test comments yet.", sim.Transcript(state))

	sim.Submit("i am interested!")
	sim.Submit("nope")
	out := sim.Transcript(state)

	lines := strings.Split(out, "\n")
	require.Equal(t, `@user123 commented (now): "nope"`, lines[0])
	require.Equal(t, "  ↳ no automation triggered", lines[1])
	require.Contains(t, out, "↳ You sent a DM: Thanks!")
}

func TestRestore(t *testing.T) {
	sim := New(Options{})
	sim.Restore(Comment{ID: "x", Text: "old"})
	sim.Restore(Comment{ID: "y", Text: "new"})
	require.Equal(t, "y", sim.Comments()[0].ID)
}
