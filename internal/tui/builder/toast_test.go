package builder

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestToast_ShowAndExpire(t *testing.T) {
	var toast Toast
	require.Empty(t, toast.View())

	require.NotNil(t, toast.Show("first"))
	require.Equal(t, "first", toast.Message())
	require.Contains(t, ansi.Strip(toast.View()), "first")

	toast.Update(toastExpiredMsg{seq: 1})
	require.Empty(t, toast.Message())
}

func TestToast_StaleTimerIgnored(t *testing.T) {
	var toast Toast
	toast.Show("first")
	toast.Show("second")

	// Timer from the first toast fires after the second was shown
	toast.Update(toastExpiredMsg{seq: 1})
	require.Equal(t, "second", toast.Message())

	toast.Update(toastExpiredMsg{seq: 2})
	require.Empty(t, toast.Message())
}

func TestRenderHintBar(t *testing.T) {
	require.Equal(t, "tab focus • esc back", ansi.Strip(renderHintBar("tab", "focus", "esc", "back")))
	require.Empty(t, renderHintBar("odd"))
	require.Empty(t, renderHintBar())
}
