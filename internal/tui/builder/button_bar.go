package builder

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dmflow/internal/tui/theme"
)

// ButtonID identifies a wizard button.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonNext
	ButtonGoLive
)

// Button represents a single button in the button bar.
type Button struct {
	ID      ButtonID
	Label   string
	Enabled bool
	Primary bool // Rendered with the accent color when enabled
}

// ButtonBar renders the wizard buttons and tracks which one has focus.
// Disabled buttons are skipped when moving focus.
type ButtonBar struct {
	buttons []Button
	focused int // -1 when the bar is not focused
	width   int
}

// NewButtonBar creates an unfocused button bar.
func NewButtonBar() *ButtonBar {
	return &ButtonBar{focused: -1, width: 60}
}

// SetButtons replaces the buttons. Focus stays on the same button ID when it
// is still present and enabled.
func (b *ButtonBar) SetButtons(buttons []Button) {
	var prev ButtonID = -1
	if btn, ok := b.FocusedButton(); ok {
		prev = btn.ID
	}
	b.buttons = buttons
	if b.focused < 0 {
		return
	}
	b.focused = -1
	for i, btn := range buttons {
		if btn.ID == prev && btn.Enabled {
			b.focused = i
			return
		}
	}
	b.FocusFirst()
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Focused reports whether any button has focus.
func (b *ButtonBar) Focused() bool {
	return b.focused >= 0
}

// FocusFirst focuses the first enabled button. Returns false if none is enabled.
func (b *ButtonBar) FocusFirst() bool {
	b.focused = b.nextEnabled(-1, 1)
	return b.focused >= 0
}

// FocusLast focuses the last enabled button. Returns false if none is enabled.
func (b *ButtonBar) FocusLast() bool {
	b.focused = b.nextEnabled(len(b.buttons), -1)
	return b.focused >= 0
}

// FocusNext moves focus right. Returns false, leaving focus unchanged, when
// there is no enabled button to the right.
func (b *ButtonBar) FocusNext() bool {
	next := b.nextEnabled(b.focused, 1)
	if next < 0 {
		return false
	}
	b.focused = next
	return true
}

// FocusPrev moves focus left. Returns false, leaving focus unchanged, when
// there is no enabled button to the left.
func (b *ButtonBar) FocusPrev() bool {
	prev := b.nextEnabled(b.focused, -1)
	if prev < 0 {
		return false
	}
	b.focused = prev
	return true
}

// Blur removes focus from the bar.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

// FocusedButton returns the button with focus.
func (b *ButtonBar) FocusedButton() (Button, bool) {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return Button{}, false
	}
	return b.buttons[b.focused], true
}

func (b *ButtonBar) nextEnabled(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(b.buttons); i += dir {
		if b.buttons[i].Enabled {
			return i
		}
	}
	return -1
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		style := s.ButtonNormal
		switch {
		case !btn.Enabled:
			style = s.ButtonDisabled
		case i == b.focused:
			style = s.ButtonFocused
		case btn.Primary:
			style = s.ButtonPrimary
		}
		rendered = append(rendered, style.Render(btn.Label))
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// wizardButtons builds the button set for the given wizard position.
func wizardButtons(canBack, canNext, last, canGoLive, live bool) []Button {
	buttons := []Button{{ID: ButtonBack, Label: "← Back", Enabled: canBack}}
	if !last {
		return append(buttons, Button{ID: ButtonNext, Label: "Next →", Enabled: canNext, Primary: true})
	}
	label := "🚀 Go Live"
	if live {
		label = "✓ Live"
	}
	return append(buttons, Button{ID: ButtonGoLive, Label: label, Enabled: canGoLive && !live, Primary: true})
}
