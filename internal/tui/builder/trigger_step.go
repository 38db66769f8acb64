package builder

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/tui/theme"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// TriggerStep edits the trigger mode and pattern.
type TriggerStep struct {
	mode    int // Index into trigger.Modes()
	pattern textinput.Model
	quick   int // Next quick trigger to apply; -1 before the first alt+q
	width   int
}

// NewTriggerStep creates the step with mode preselected.
func NewTriggerStep(mode trigger.Mode) *TriggerStep {
	t := &TriggerStep{
		pattern: newTextInput("Comment: ", "", 40),
		quick:   -1,
		width:   60,
	}
	t.setMode(mode)
	t.pattern.Focus()
	return t
}

// Init starts the cursor blinking.
func (t *TriggerStep) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the trigger step.
func (t *TriggerStep) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		modes := trigger.Modes()
		switch msg.String() {
		case "up":
			t.setMode(modes[(t.mode+len(modes)-1)%len(modes)])
			return nil
		case "down":
			t.setMode(modes[(t.mode+1)%len(modes)])
			return nil
		case "alt+q":
			quick := workflow.QuickTriggers()
			t.quick = (t.quick + 1) % len(quick)
			t.pattern.SetValue(quick[t.quick])
			t.pattern.CursorEnd()
			return nil
		case "enter":
			return func() tea.Msg { return SubmitMsg{} }
		}
	}

	var cmd tea.Cmd
	t.pattern, cmd = t.pattern.Update(msg)
	return cmd
}

func (t *TriggerStep) setMode(mode trigger.Mode) {
	for i, m := range trigger.Modes() {
		if m == mode {
			t.mode = i
		}
	}
	t.pattern.Placeholder = "e.g. " + strings.Trim(t.Mode().Example(), `"`)
}

// Mode returns the selected mode.
func (t *TriggerStep) Mode() trigger.Mode {
	return trigger.Modes()[t.mode]
}

// Pattern returns the typed pattern.
func (t *TriggerStep) Pattern() string {
	return t.pattern.Value()
}

// SetTrigger loads tr into the step.
func (t *TriggerStep) SetTrigger(tr trigger.Trigger) {
	t.setMode(tr.Mode)
	t.pattern.SetValue(tr.Pattern)
}

// SetSize updates the dimensions of the trigger step.
func (t *TriggerStep) SetSize(width, height int) {
	t.width = width
	t.pattern.SetWidth(max(width-len(t.pattern.Prompt)-2, 10))
}

// Focus focuses the pattern input.
func (t *TriggerStep) Focus() tea.Cmd {
	return t.pattern.Focus()
}

// Blur blurs the pattern input.
func (t *TriggerStep) Blur() {
	t.pattern.Blur()
}

// View renders the mode list, pattern input, quick triggers and echo line.
func (t *TriggerStep) View() string {
	s := theme.Current().S()

	var modes []string
	for i, m := range trigger.Modes() {
		radio := "○"
		style := s.Text
		if i == t.mode {
			radio = "●"
			style = s.Accent
		}
		modes = append(modes, fmt.Sprintf("%s %s  %s",
			style.Render(radio), style.Render(m.Label()), s.Muted.Render(m.Description())))
	}

	var quick []string
	for _, q := range workflow.QuickTriggers() {
		quick = append(quick, s.Chip.Render(q))
	}

	tr := trigger.Trigger{Mode: t.Mode(), Pattern: t.Pattern()}
	echo := s.Muted.Render("Type the comment that should start the automation.")
	if tr.IsSet() {
		echo = s.Success.Render("✓ " + tr.Describe())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.SectionTitle.Render("Match type"),
		strings.Join(modes, "\n"),
		"",
		t.pattern.View(),
		"",
		s.SectionTitle.Render("Quick triggers")+" "+s.Muted.Render("(alt+q)"),
		lipgloss.NewStyle().Width(t.width).Render(strings.Join(quick, " ")),
		"",
		echo,
		"",
		renderHintBar("↑↓", "match type", "alt+q", "quick trigger", "enter", "next", "esc", "back"),
	)
}
