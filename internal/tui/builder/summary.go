package builder

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dmflow/internal/preview"
	"github.com/mark3labs/dmflow/internal/render"
	"github.com/mark3labs/dmflow/internal/report"
	"github.com/mark3labs/dmflow/internal/tui/theme"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// Summary is a scrollable overlay showing the workflow as rendered markdown.
type Summary struct {
	viewport viewport.Model
	visible  bool
	width    int
	height   int
}

// NewSummary creates a hidden summary overlay.
func NewSummary() *Summary {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(16),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return &Summary{viewport: vp, width: 64, height: 20}
}

// Show renders the current workflow into the overlay and makes it visible.
func (s *Summary) Show(state workflow.State, sim *preview.Simulator) {
	s.viewport.SetContent(render.Markdown(report.Markdown(state, sim), s.viewport.Width()))
	s.viewport.GotoTop()
	s.visible = true
}

// Hide hides the overlay.
func (s *Summary) Hide() {
	s.visible = false
}

// Visible reports whether the overlay is shown.
func (s *Summary) Visible() bool {
	return s.visible
}

// SetSize sizes the overlay to a share of the screen.
func (s *Summary) SetSize(width, height int) {
	s.width = min(max(width*2/3, 40), width)
	s.height = min(max(height*3/4, 10), height)
	s.viewport.SetWidth(s.width - 4)
	s.viewport.SetHeight(s.height - 4)
}

// Update forwards scrolling to the viewport.
func (s *Summary) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

// View renders the overlay box.
func (s *Summary) View() string {
	st := theme.Current().S()
	return st.PanelFocused.Width(s.width).Render(lipgloss.JoinVertical(lipgloss.Left,
		st.SectionTitle.Render("Workflow Summary"),
		s.viewport.View(),
		renderHintBar("↑↓", "scroll", "ctrl+s", "close", "esc", "close"),
	))
}
