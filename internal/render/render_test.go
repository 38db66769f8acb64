package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	out := ansi.Strip(Markdown("# Workflow: travel-lover\n\n**Status:** Ready", 60))
	require.Contains(t, out, "Workflow: travel-lover")
	require.Contains(t, out, "Status:")
	require.False(t, strings.HasSuffix(out, "\n"))
}

func TestHighlight(t *testing.T) {
	src := "name: travel-lover\nstatus: Ready\n"

	out := Highlight(src, "workflow.yaml", "")
	require.Equal(t, src, ansi.Strip(out))
	require.NotEqual(t, src, out, "expected escape sequences in highlighted output")

	out = Highlight(src, "workflow.yaml", "#313244")
	require.Equal(t, src, ansi.Strip(out))
}
