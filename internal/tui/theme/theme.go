// Package theme holds the color palettes and pre-built styles of the builder UI.
package theme

import (
	"fmt"
	"sort"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color takes a hex string
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

var (
	registry = map[string]func() *Theme{
		"instagram":  NewInstagram,
		"catppuccin": NewCatppuccinMocha,
	}

	mu      sync.RWMutex
	current = NewInstagram()
)

// Names returns the registered theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns the active theme.
func Current() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetCurrent activates the named theme. An empty name selects the default.
func SetCurrent(name string) error {
	if name == "" {
		name = "instagram"
	}
	ctor, ok := registry[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, Names())
	}
	mu.Lock()
	current = ctor()
	mu.Unlock()
	return nil
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	primary := lipgloss.Color(t.Primary)
	secondary := lipgloss.Color(t.Secondary)
	base := lipgloss.Color(t.BgBase)
	surface0 := lipgloss.Color(t.BgSurface0)
	surface1 := lipgloss.Color(t.BgSurface1)
	surface2 := lipgloss.Color(t.BgSurface2)
	muted := lipgloss.Color(t.FgMuted)
	subtle := lipgloss.Color(t.FgSubtle)
	text := lipgloss.Color(t.FgBase)
	bright := lipgloss.Color(t.FgBright)

	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	return &Styles{
		HeaderTitle: lipgloss.NewStyle().Foreground(primary).Bold(true),
		HeaderInfo:  lipgloss.NewStyle().Foreground(subtle),

		StepTitle:       lipgloss.NewStyle().Foreground(primary).Bold(true),
		StepDescription: lipgloss.NewStyle().Foreground(subtle),
		SectionTitle:    lipgloss.NewStyle().Foreground(text).Bold(true),
		Text:            lipgloss.NewStyle().Foreground(text),
		Muted:           lipgloss.NewStyle().Foreground(muted),
		Accent:          lipgloss.NewStyle().Foreground(secondary).Bold(true),
		Success:         lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning:         lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Error:           lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(surface2).
			Padding(0, 1),
		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		ListItem:         lipgloss.NewStyle().Foreground(text).PaddingLeft(2),
		ListItemSelected: lipgloss.NewStyle().
			Foreground(bright).
			Background(surface0).
			Bold(true).
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(primary),

		ButtonNormal:   button.Foreground(text).Background(surface1),
		ButtonDisabled: button.Foreground(muted).Background(lipgloss.Color(t.BgMantle)),
		ButtonFocused:  button.Foreground(base).Background(secondary).Bold(true),
		ButtonPrimary:  button.Foreground(bright).Background(primary).Bold(true),

		HintKey:       lipgloss.NewStyle().Foreground(text).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(subtle),
		HintSeparator: lipgloss.NewStyle().Foreground(surface2),

		BadgePreview:    badge.Foreground(base).Background(lipgloss.Color(t.Warning)),
		BadgeLive:       badge.Foreground(base).Background(lipgloss.Color(t.Success)),
		BadgeIncomplete: badge.Foreground(text).Background(surface1),
		BadgeReady:      badge.Foreground(base).Background(secondary),

		StepPending:   lipgloss.NewStyle().Foreground(muted),
		StepCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		StepCurrent:   lipgloss.NewStyle().Foreground(primary).Bold(true),

		Chip: lipgloss.NewStyle().Foreground(secondary).Background(surface0).Padding(0, 1),

		CommentBubble: lipgloss.NewStyle().
			Foreground(text).
			Background(surface0).
			Padding(0, 1),
		ReplyBubble: lipgloss.NewStyle().
			Foreground(bright).
			Background(secondary).
			Padding(0, 1),
		Author: lipgloss.NewStyle().Foreground(text).Bold(true),
	}
}
