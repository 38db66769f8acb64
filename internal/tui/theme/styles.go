package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	HeaderInfo  lipgloss.Style

	StepTitle       lipgloss.Style
	StepDescription lipgloss.Style
	SectionTitle    lipgloss.Style
	Text            lipgloss.Style
	Muted           lipgloss.Style
	Accent          lipgloss.Style
	Success         lipgloss.Style
	Warning         lipgloss.Style
	Error           lipgloss.Style

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonPrimary  lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	// Status badges
	BadgePreview    lipgloss.Style
	BadgeLive       lipgloss.Style
	BadgeIncomplete lipgloss.Style
	BadgeReady      lipgloss.Style

	// Automation flow markers
	StepPending   lipgloss.Style
	StepCompleted lipgloss.Style
	StepCurrent   lipgloss.Style

	Chip lipgloss.Style

	// Phone preview
	CommentBubble lipgloss.Style
	ReplyBubble   lipgloss.Style
	Author        lipgloss.Style
}
