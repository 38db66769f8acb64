package builder

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/dmflow/internal/reply"
	"github.com/mark3labs/dmflow/internal/tui/theme"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// ReplyStep edits the DM sent when a comment matches.
type ReplyStep struct {
	textarea textarea.Model
	template int // Next template to apply; -1 before the first alt+t
	width    int
}

// NewReplyStep creates the reply editor.
func NewReplyStep() *ReplyStep {
	r := &ReplyStep{
		textarea: newTextArea("Hi {{username}}! Thanks for your comment...", 56, 5),
		template: -1,
		width:    60,
	}
	r.textarea.Focus()
	return r
}

// Init starts the cursor blinking.
func (r *ReplyStep) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the reply step.
func (r *ReplyStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch key := msg.String(); key {
		case "alt+1", "alt+2", "alt+3", "alt+4":
			placeholders := reply.Placeholders()
			r.textarea.InsertString(string(placeholders[key[len(key)-1]-'1']))
			return nil
		case "alt+t":
			templates := workflow.ReplyTemplates()
			r.template = (r.template + 1) % len(templates)
			r.textarea.SetValue(templates[r.template].Message)
			return nil
		case "alt+e":
			if os.Getenv("EDITOR") != "" {
				return r.openEditor()
			}
			return nil
		}

	case ReplyEditedMsg:
		r.textarea.SetValue(strings.TrimRight(msg.Content, "\n"))
		return nil
	}

	var cmd tea.Cmd
	r.textarea, cmd = r.textarea.Update(msg)
	return cmd
}

// openEditor launches $EDITOR on the current message.
func (r *ReplyStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "dmflow_reply_*.txt")
	if err != nil {
		logger.Warn("Creating reply temp file: %v", err)
		return nil
	}

	if _, err := tmpfile.WriteString(r.textarea.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("dmflow", tmpfile.Name())
	if err != nil {
		logger.Warn("Resolving editor: %v", err)
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	return tea.ExecProcess(cmd, editorFinished(tmpfile.Name()))
}

// editorFinished reads the edited message back and removes the temp file,
// whatever the outcome.
func editorFinished(path string) tea.ExecCallback {
	return func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			logger.Warn("Editor exited with error: %v", err)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Reading edited reply: %v", err)
			return nil
		}
		return ReplyEditedMsg{Content: string(content)}
	}
}

// Message returns the current reply text.
func (r *ReplyStep) Message() string {
	return r.textarea.Value()
}

// SetMessage replaces the reply text.
func (r *ReplyStep) SetMessage(message string) {
	r.textarea.SetValue(message)
}

// SetSize updates the dimensions of the reply step.
func (r *ReplyStep) SetSize(width, height int) {
	r.width = width
	r.textarea.SetWidth(max(width-4, 20))
}

// Focus focuses the textarea.
func (r *ReplyStep) Focus() tea.Cmd {
	return r.textarea.Focus()
}

// Blur blurs the textarea.
func (r *ReplyStep) Blur() {
	r.textarea.Blur()
}

// View renders the editor, placeholder chips, templates and stats.
func (r *ReplyStep) View() string {
	s := theme.Current().S()

	var chips []string
	for i, p := range reply.Placeholders() {
		chips = append(chips, s.Muted.Render(fmt.Sprintf("alt+%d", i+1))+" "+s.Chip.Render(p.Label()))
	}

	var templates []string
	for i, tpl := range workflow.ReplyTemplates() {
		style := s.Text
		if i == r.template {
			style = s.Accent
		}
		templates = append(templates, style.Render(tpl.Emoji+" "+tpl.Title))
	}

	message := r.textarea.Value()
	stats := fmt.Sprintf("%d characters", utf8.RuneCountInString(message))
	if tokens := reply.Tokens(message); len(tokens) > 0 {
		names := make([]string, len(tokens))
		for i, t := range tokens {
			names[i] = string(t)
		}
		stats += " • personalized with " + strings.Join(names, ", ")
	}

	hints := []string{"alt+1-4", "placeholder", "alt+t", "template"}
	if os.Getenv("EDITOR") != "" {
		hints = append(hints, "alt+e", "editor")
	}
	hints = append(hints, "tab", "buttons")

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Panel.Render(r.textarea.View()),
		s.Muted.Render(stats),
		"",
		s.SectionTitle.Render("Placeholders"),
		lipgloss.NewStyle().Width(r.width).Render(strings.Join(chips, "  ")),
		"",
		s.SectionTitle.Render("Templates")+" "+s.Muted.Render("(alt+t)"),
		strings.Join(templates, s.Muted.Render(" • ")),
		"",
		renderHintBar(hints...),
	)
}
