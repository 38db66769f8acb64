package builder

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dmflow/internal/tui/theme"
)

// newTextInput creates a single-line input styled with the current theme.
func newTextInput(prompt, placeholder string, width int) textinput.Model {
	t := theme.Current()

	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	input.SetWidth(width)
	return input
}

// newTextArea creates the reply editor.
func newTextArea(placeholder string, width, height int) textarea.Model {
	t := theme.Current()

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 1000
	ta.SetWidth(width)
	ta.SetHeight(height)

	styles := textarea.DefaultDarkStyles()
	styles.Cursor.Color = lipgloss.Color(t.Primary)
	styles.Cursor.Shape = tea.CursorBar
	styles.Cursor.Blink = true
	ta.SetStyles(styles)
	return ta
}
