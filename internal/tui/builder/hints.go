package builder

import (
	"strings"

	"github.com/mark3labs/dmflow/internal/tui/theme"
)

// renderHintBar renders key-description pairs.
// Example: renderHintBar("↑↓", "navigate", "enter", "select")
// Returns: "↑↓ navigate • enter select"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, s.HintKey.Render(pairs[i])+" "+s.HintDesc.Render(pairs[i+1]))
	}
	return strings.Join(parts, " "+s.HintSeparator.Render("•")+" ")
}
