package builder

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/dmflow/internal/preview"
	"github.com/mark3labs/dmflow/internal/tui/testfixtures"
	"github.com/stretchr/testify/require"
)

func newTestPanel() (*PreviewPanel, *preview.Simulator) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sim := preview.New(preview.Options{
		Authors: []string{"user123"},
		Now:     func() time.Time { return now },
	})
	p := NewPreviewPanel(sim)
	p.SetSize(50, 30)
	return p, sim
}

func TestPreviewPanel_Empty(t *testing.T) {
	p, _ := newTestPanel()
	out := ansi.Strip(p.View(testfixtures.EmptyState()))

	require.Contains(t, out, "PREVIEW")
	require.Contains(t, out, "Incomplete")
	require.Contains(t, out, "No post selected")
	require.Contains(t, out, "Configure a trigger")
	require.Contains(t, out, "No test comments yet")
}

func TestPreviewPanel_ReadyAndLive(t *testing.T) {
	p, _ := newTestPanel()

	out := ansi.Strip(p.View(testfixtures.ReadyState()))
	require.Contains(t, out, "Ready")
	require.Contains(t, out, "@travel_lover")
	require.Contains(t, out, "✓ Select Post/Reel")

	out = ansi.Strip(p.View(testfixtures.LiveState()))
	require.Contains(t, out, "LIVE")
	require.Contains(t, out, "Active")
}

func TestPreviewPanel_SubmitComment(t *testing.T) {
	p, sim := newTestPanel()
	p.Focus()
	require.True(t, p.Focused())

	for _, msg := range testfixtures.Type("I am interested") {
		p.Update(msg)
	}
	cmd := p.Update(testfixtures.Key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(CommentSubmittedMsg)
	require.True(t, ok)
	require.Equal(t, "I am interested", msg.Comment.Text)
	require.Equal(t, 1, sim.Len())
	require.Empty(t, p.Input())

	out := ansi.Strip(p.View(testfixtures.ReadyState()))
	require.Contains(t, out, "@user123")
	require.Contains(t, out, "DM sent")
}

func TestPreviewPanel_UnconfiguredTriggerNeverReplies(t *testing.T) {
	p, sim := newTestPanel()
	sim.Submit("interested")

	out := ansi.Strip(p.View(testfixtures.StateWithPost()))
	require.Contains(t, out, "no automation triggered")
}

func TestPreviewPanel_TranscriptFitsHeight(t *testing.T) {
	p, sim := newTestPanel()
	p.SetSize(50, 40)
	for i := range 12 {
		sim.Submit(fmt.Sprintf("comment %d", i))
	}

	out := ansi.Strip(p.View(testfixtures.ReadyState()))
	require.LessOrEqual(t, len(strings.Split(out, "\n")), 40)
	require.Contains(t, out, "comment 11") // Newest first
	require.NotContains(t, out, "comment 0")
	require.Contains(t, out, "older comments")
}
