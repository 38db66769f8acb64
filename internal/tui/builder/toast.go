package builder

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dmflow/internal/tui/theme"
)

const toastDuration = 3 * time.Second

// Toast shows a one-line notification that dismisses itself.
type Toast struct {
	message string
	seq     int
}

// Show displays msg and schedules its dismissal. A newer toast replaces an
// older one; the older one's timer is then ignored.
func (t *Toast) Show(msg string) tea.Cmd {
	t.message = msg
	t.seq++
	seq := t.seq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Update hides the toast when its timer fires.
func (t *Toast) Update(msg tea.Msg) {
	if m, ok := msg.(toastExpiredMsg); ok && m.seq == t.seq {
		t.message = ""
	}
}

// Message returns the visible message, if any.
func (t *Toast) Message() string {
	return t.message
}

// View renders the toast, or "" when hidden.
func (t *Toast) View() string {
	if t.message == "" {
		return ""
	}
	th := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(th.Warning)).
		Padding(0, 1).
		Bold(true).
		Render(t.message)
}
