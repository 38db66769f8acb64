package builder

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestWizardButtons(t *testing.T) {
	tests := []struct {
		name                             string
		canBack, canNext, last, ok, live bool
		wantLabels                       []string
		wantEnabled                      []bool
	}{
		{
			name:        "first step empty",
			wantLabels:  []string{"← Back", "Next →"},
			wantEnabled: []bool{false, false},
		},
		{
			name:        "middle step complete",
			canBack:     true,
			canNext:     true,
			wantLabels:  []string{"← Back", "Next →"},
			wantEnabled: []bool{true, true},
		},
		{
			name:        "last step incomplete",
			canBack:     true,
			last:        true,
			wantLabels:  []string{"← Back", "🚀 Go Live"},
			wantEnabled: []bool{true, false},
		},
		{
			name:        "last step ready",
			canBack:     true,
			last:        true,
			ok:          true,
			wantLabels:  []string{"← Back", "🚀 Go Live"},
			wantEnabled: []bool{true, true},
		},
		{
			name:        "already live",
			canBack:     true,
			last:        true,
			ok:          true,
			live:        true,
			wantLabels:  []string{"← Back", "✓ Live"},
			wantEnabled: []bool{true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buttons := wizardButtons(tt.canBack, tt.canNext, tt.last, tt.ok, tt.live)
			require.Len(t, buttons, len(tt.wantLabels))
			for i, b := range buttons {
				require.Equal(t, tt.wantLabels[i], b.Label)
				require.Equal(t, tt.wantEnabled[i], b.Enabled, b.Label)
			}
		})
	}
}

func TestButtonBar_FocusSkipsDisabled(t *testing.T) {
	bar := NewButtonBar()
	bar.SetButtons([]Button{
		{ID: ButtonBack, Label: "Back", Enabled: false},
		{ID: ButtonNext, Label: "Next", Enabled: true},
	})

	require.False(t, bar.Focused())
	require.True(t, bar.FocusFirst())
	btn, ok := bar.FocusedButton()
	require.True(t, ok)
	require.Equal(t, ButtonNext, btn.ID)

	require.False(t, bar.FocusPrev(), "Back is disabled")
	require.False(t, bar.FocusNext(), "no button to the right")

	bar.Blur()
	_, ok = bar.FocusedButton()
	require.False(t, ok)
}

func TestButtonBar_NoEnabledButtons(t *testing.T) {
	bar := NewButtonBar()
	bar.SetButtons(wizardButtons(false, false, false, false, false))
	require.False(t, bar.FocusFirst())
	require.False(t, bar.FocusLast())
	require.False(t, bar.Focused())
}

func TestButtonBar_SetButtonsKeepsFocus(t *testing.T) {
	bar := NewButtonBar()
	bar.SetButtons(wizardButtons(true, true, false, false, false))
	require.True(t, bar.FocusLast())

	// Same buttons rebuilt: focus stays on Next
	bar.SetButtons(wizardButtons(true, true, false, false, false))
	btn, _ := bar.FocusedButton()
	require.Equal(t, ButtonNext, btn.ID)

	// Next disabled: focus falls back to the first enabled button
	bar.SetButtons(wizardButtons(true, false, false, false, false))
	btn, _ = bar.FocusedButton()
	require.Equal(t, ButtonBack, btn.ID)

	// Unfocused bars stay unfocused
	bar.Blur()
	bar.SetButtons(wizardButtons(true, true, false, false, false))
	require.False(t, bar.Focused())
}

func TestButtonBar_Render(t *testing.T) {
	bar := NewButtonBar()
	require.Empty(t, bar.Render())

	bar.SetWidth(40)
	bar.SetButtons(wizardButtons(true, true, false, false, false))
	out := ansi.Strip(bar.Render())
	require.Contains(t, out, "← Back")
	require.Contains(t, out, "Next →")
}
