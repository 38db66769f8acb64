package builder

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/mark3labs/dmflow/internal/preview"
	"github.com/mark3labs/dmflow/internal/reply"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/tui/theme"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// CommentSubmittedMsg is sent after a test comment is logged.
type CommentSubmittedMsg struct {
	Comment preview.Comment
}

// PreviewPanel mirrors the workflow as a phone-style preview and owns the
// test comment input.
type PreviewPanel struct {
	input  textinput.Model
	sim    *preview.Simulator
	width  int
	height int
}

// NewPreviewPanel creates a panel backed by sim.
func NewPreviewPanel(sim *preview.Simulator) *PreviewPanel {
	return &PreviewPanel{
		input:  newTextInput("💬 ", "Type a test comment...", 36),
		sim:    sim,
		width:  44,
		height: 30,
	}
}

// Update handles messages while the comment input has focus. Enter logs the
// comment; blank input is ignored and left in place.
func (p *PreviewPanel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		c, ok := p.sim.Submit(p.input.Value())
		if !ok {
			return nil
		}
		p.input.SetValue("")
		return func() tea.Msg { return CommentSubmittedMsg{Comment: c} }
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// Input returns the current test comment text.
func (p *PreviewPanel) Input() string {
	return p.input.Value()
}

// SetSize updates the dimensions of the panel.
func (p *PreviewPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.SetWidth(max(width-8, 10))
}

// Focus focuses the comment input.
func (p *PreviewPanel) Focus() tea.Cmd {
	return p.input.Focus()
}

// Blur blurs the comment input.
func (p *PreviewPanel) Blur() {
	p.input.Blur()
}

// Focused reports whether the comment input has focus.
func (p *PreviewPanel) Focused() bool {
	return p.input.Focused()
}

// View renders the panel for state.
func (p *PreviewPanel) View(state workflow.State) string {
	s := theme.Current().S()
	inner := max(p.width-4, 20)

	badge := s.BadgePreview.Render("PREVIEW")
	if state.Live {
		badge = s.BadgeLive.Render("● LIVE")
	}

	sections := []string{
		badge + "  " + p.renderStatus(state),
		"",
		p.renderPost(state, inner),
		"",
		s.SectionTitle.Render("Automation Flow"),
		p.renderFlow(state, inner),
		"",
		s.SectionTitle.Render("Live Preview"),
		p.renderLivePreview(state, inner),
		"",
		s.SectionTitle.Render("Test Comments"),
		p.input.View(),
	}

	style := s.Panel
	if p.input.Focused() {
		style = s.PanelFocused
	}

	// The transcript gets whatever rows the fixed sections leave over
	rows := p.height - style.GetVerticalFrameSize() - lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, sections...))
	sections = append(sections, p.renderTranscript(state, inner, rows))

	return style.Width(p.width).MaxHeight(p.height).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (p *PreviewPanel) renderStatus(state workflow.State) string {
	s := theme.Current().S()
	switch state.Status() {
	case workflow.StatusActive:
		return s.BadgeLive.Render(string(workflow.StatusActive))
	case workflow.StatusReady:
		return s.BadgeReady.Render(string(workflow.StatusReady))
	default:
		return s.BadgeIncomplete.Render(string(workflow.StatusIncomplete))
	}
}

func (p *PreviewPanel) renderPost(state workflow.State, width int) string {
	s := theme.Current().S()
	if state.Post == nil {
		return s.Muted.Render("No post selected")
	}

	post := state.Post
	icon := "📷"
	if post.Kind == workflow.KindReel {
		icon = "🎬"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Author.Render("@"+post.Author)+" "+s.Muted.Render("• "+post.Age),
		icon+" "+s.Text.Render(reply.Truncate(post.Title(), width-3)),
		s.Muted.Render(fmt.Sprintf("♥ %s  💬 %s",
			humanize.Comma(int64(post.Likes)), humanize.Comma(int64(post.Comments)))),
	)
}

func (p *PreviewPanel) renderFlow(state workflow.State, width int) string {
	s := theme.Current().S()

	summaries := map[workflow.Step]string{
		workflow.StepSelectContent:    "Select a post or reel",
		workflow.StepConfigureTrigger: state.Trigger.Describe(),
		workflow.StepComposeReply:     "Set DM response",
	}
	if state.Post != nil {
		summaries[workflow.StepSelectContent] = fmt.Sprintf("Monitoring @%s's %s", state.Post.Author, state.Post.Kind)
	}
	if state.HasReply() {
		summaries[workflow.StepComposeReply] = "Sends: " + strings.ReplaceAll(state.Reply, "\n", " ")
	}

	var lines []string
	for i, step := range workflow.Steps() {
		marker := s.StepPending.Render(fmt.Sprintf("%d", i+1))
		if state.StepStatus(step) == workflow.StepCompleted {
			marker = s.StepCompleted.Render("✓")
		}
		title := s.Muted.Render(step.Title())
		if step == state.Step && !state.Live {
			marker = s.StepCurrent.Render(fmt.Sprintf("%d", i+1))
			title = s.Accent.Render(step.Title())
		}
		summary := s.Muted.Render(reply.Truncate(summaries[step], max(width-4, 10)))
		lines = append(lines, marker+" "+title, "  "+summary)
	}
	return strings.Join(lines, "\n")
}

// renderLivePreview shows the exchange the configured workflow produces.
func (p *PreviewPanel) renderLivePreview(state workflow.State, width int) string {
	s := theme.Current().S()
	if !state.Trigger.IsSet() {
		return s.Muted.Render("Configure a trigger to see the conversation.")
	}

	sample := state.Trigger.Pattern
	if kws := trigger.Keywords(sample); state.Trigger.Mode == trigger.ModeKeyword && len(kws) > 0 {
		sample = kws[0]
	}
	bubbleWidth := max(width*3/4, 12)

	lines := []string{
		s.CommentBubble.Width(bubbleWidth).Render(s.Author.Render("@"+preview.DefaultAuthors[0]) + " " + sample),
	}
	if state.HasReply() {
		out := s.ReplyBubble.Width(bubbleWidth).Render(state.Reply)
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, out))
	} else {
		lines = append(lines, s.Muted.Render("Compose a reply to complete the flow."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// transcriptEntryRows is the height of one rendered exchange.
const transcriptEntryRows = 3

// renderTranscript lists logged comments, newest first, each re-evaluated
// against the current trigger. Only the newest exchanges that fit in rows
// are shown; the rest are counted on a final line.
func (p *PreviewPanel) renderTranscript(state workflow.State, width, rows int) string {
	s := theme.Current().S()

	exchanges := p.sim.Exchanges(state)
	if len(exchanges) == 0 {
		return s.Muted.Render("No test comments yet. Try one above.")
	}

	shown := len(exchanges)
	if shown*transcriptEntryRows > rows {
		// Keep a row for the overflow line
		shown = max((rows-1)/transcriptEntryRows, 0)
	}

	var lines []string
	for _, ex := range exchanges[:shown] {
		c := ex.Comment
		lines = append(lines, s.Author.Render("@"+c.Author)+" "+s.Muted.Render(p.sim.Label(c)))
		lines = append(lines, "  "+s.Text.Render(reply.Truncate(c.Text, max(width-2, 10))))
		if ex.Matched {
			lines = append(lines, "  "+s.Success.Render("↳ DM sent: ")+s.Text.Render(reply.Truncate(ex.Reply, max(width-14, 10))))
		} else {
			lines = append(lines, "  "+s.Muted.Render("↳ no automation triggered"))
		}
	}
	if hidden := len(exchanges) - shown; hidden > 0 {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("… %d older %s", hidden, english.PluralWord(hidden, "comment", ""))))
	}
	return strings.Join(lines, "\n")
}

