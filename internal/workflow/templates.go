package workflow

// QuickTriggers returns common trigger phrases offered as one-key shortcuts.
func QuickTriggers() []string {
	return []string{
		"interested",
		"want more info",
		"how much",
		"details please",
		"sign me up",
		"tell me more",
	}
}

// ReplyTemplate is a canned reply message.
type ReplyTemplate struct {
	Title   string
	Message string
	Emoji   string
}

// ReplyTemplates returns the built-in reply templates.
func ReplyTemplates() []ReplyTemplate {
	return []ReplyTemplate{
		{
			Title:   "Friendly Welcome",
			Message: "Hey! Thanks for your comment! 😊 I'd love to help you out. What can I assist you with?",
			Emoji:   "👋",
		},
		{
			Title:   "Product Inquiry",
			Message: "Hi there! Thanks for showing interest! 🎉 I'd be happy to share more details about our products. What specific information are you looking for?",
			Emoji:   "💡",
		},
		{
			Title:   "Quick Response",
			Message: "Thanks for reaching out! ⚡ I'll get back to you with all the details you need.",
			Emoji:   "⚡",
		},
		{
			Title:   "Personal Touch",
			Message: "Hey! I noticed your comment and wanted to personally reach out. How can I help you today?",
			Emoji:   "💬",
		},
	}
}
