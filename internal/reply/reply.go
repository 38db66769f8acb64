package reply

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnknownPlaceholder is returned by ParsePlaceholder for unsupported names.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// Placeholder is a personalization token that can be spliced into a reply.
type Placeholder string

const (
	UserName  Placeholder = "{{user_name}}"
	Username  Placeholder = "{{username}}"
	Comment   Placeholder = "{{comment}}"
	PostTitle Placeholder = "{{post_title}}"
)

// Placeholders returns the supported tokens in shortcut order (alt+1..alt+4).
func Placeholders() []Placeholder {
	return []Placeholder{UserName, Username, Comment, PostTitle}
}

// ParsePlaceholder accepts a token with or without braces, e.g. "username"
// or "{{username}}".
func ParsePlaceholder(s string) (Placeholder, error) {
	name := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "{{"), "}}")
	token := Placeholder("{{" + strings.ToLower(name) + "}}")
	for _, p := range Placeholders() {
		if p == token {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlaceholder, s)
}

// Label returns the chip text shown for a placeholder.
func (p Placeholder) Label() string {
	switch p {
	case UserName:
		return "👤 {{user_name}}"
	case Username:
		return "@{{username}}"
	case Comment:
		return `"{{comment}}"`
	default:
		return string(p)
	}
}

// Variables holds the values substituted into placeholders.
type Variables struct {
	UserName  string // Display name of the commenter
	Username  string // Handle of the commenter
	Comment   string // Text of the triggering comment
	PostTitle string // Caption of the monitored post
}

// Render replaces {{placeholder}} tokens in message with values from vars.
// Unknown tokens are left untouched.
func Render(message string, vars Variables) string {
	return strings.NewReplacer(
		string(UserName), vars.UserName,
		string(Username), vars.Username,
		string(Comment), vars.Comment,
		string(PostTitle), vars.PostTitle,
	).Replace(message)
}

// InsertAt splices token into message at the rune offset caret and returns
// the new message with the caret positioned after the token. Out of range
// carets are clamped to the message bounds.
func InsertAt(message string, caret int, token Placeholder) (string, int) {
	runes := []rune(message)
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}

	var b strings.Builder
	b.WriteString(string(runes[:caret]))
	b.WriteString(string(token))
	b.WriteString(string(runes[caret:]))

	return b.String(), caret + len([]rune(string(token)))
}

var tokenPattern = regexp.MustCompile(`\{\{[a-z_]+\}\}`)

// Tokens returns the known placeholders present in message, in order of
// first appearance, without duplicates.
func Tokens(message string) []Placeholder {
	known := make(map[Placeholder]bool)
	for _, p := range Placeholders() {
		known[p] = true
	}

	var found []Placeholder
	seen := make(map[Placeholder]bool)
	for _, m := range tokenPattern.FindAllString(message, -1) {
		p := Placeholder(m)
		if known[p] && !seen[p] {
			seen[p] = true
			found = append(found, p)
		}
	}
	return found
}

// Truncate shortens s to max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
