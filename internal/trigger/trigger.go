// Package trigger decides whether a comment should provoke an automated reply.
package trigger

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the comparison strategy for a trigger.
type Mode string

const (
	ModeExact    Mode = "exact"    // Whole comment equals the pattern
	ModeKeyword  Mode = "keyword"  // Comment contains any comma-separated keyword
	ModeContains Mode = "contains" // Comment contains the pattern
)

var (
	// ErrEmptyPattern is returned when a trigger has no usable pattern.
	ErrEmptyPattern = errors.New("trigger pattern cannot be empty")
	// ErrUnknownMode is returned by ParseMode for unrecognized input.
	ErrUnknownMode = errors.New("unknown trigger mode")
)

// Modes returns all modes in display order.
func Modes() []Mode {
	return []Mode{ModeExact, ModeKeyword, ModeContains}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeExact:
		return ModeExact, nil
	case ModeKeyword:
		return ModeKeyword, nil
	case ModeContains:
		return ModeContains, nil
	default:
		return ModeContains, fmt.Errorf("%w: %q (want exact, keyword or contains)", ErrUnknownMode, s)
	}
}

// Label returns the human-readable name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeExact:
		return "Exact Match"
	case ModeKeyword:
		return "Keyword Match"
	default:
		return "Contains Text"
	}
}

// Description explains when the mode fires.
func (m Mode) Description() string {
	switch m {
	case ModeExact:
		return "Triggers only when comment exactly matches"
	case ModeKeyword:
		return "Triggers when comment contains specific keywords"
	default:
		return "Triggers when comment contains the text"
	}
}

// Example returns a sample pattern for the mode.
func (m Mode) Example() string {
	switch m {
	case ModeExact:
		return `"interested"`
	case ModeKeyword:
		return "interested, want, need"
	default:
		return "interested"
	}
}

// Matches reports whether candidate satisfies the trigger described by mode
// and pattern. Both sides are compared lower-cased. Unrecognized modes use
// contains semantics.
func Matches(mode Mode, pattern, candidate string) bool {
	p := strings.ToLower(pattern)
	c := strings.ToLower(candidate)

	switch mode {
	case ModeExact:
		return c == p
	case ModeKeyword:
		for _, kw := range Keywords(p) {
			if strings.Contains(c, kw) {
				return true
			}
		}
		return false
	default:
		return strings.Contains(c, p)
	}
}

// Keywords splits a keyword pattern on commas and trims each segment.
// Segments that are empty after trimming are dropped, so "want, " yields
// only "want".
func Keywords(pattern string) []string {
	parts := strings.Split(pattern, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// Trigger is the rule deciding whether a comment should provoke a reply.
type Trigger struct {
	Mode    Mode   `json:"mode" yaml:"mode"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Match evaluates the trigger against a candidate comment.
func (t Trigger) Match(candidate string) bool {
	return Matches(t.Mode, t.Pattern, candidate)
}

// IsSet reports whether the trigger has a non-blank pattern.
func (t Trigger) IsSet() bool {
	return strings.TrimSpace(t.Pattern) != ""
}

// Validate rejects triggers that cannot be meaningfully configured.
func (t Trigger) Validate() error {
	if !t.IsSet() {
		return ErrEmptyPattern
	}
	if t.Mode == ModeKeyword && len(Keywords(t.Pattern)) == 0 {
		return ErrEmptyPattern
	}
	return nil
}

// Describe summarizes the trigger for display.
func (t Trigger) Describe() string {
	if !t.IsSet() {
		return "Set up comment trigger"
	}
	switch t.Mode {
	case ModeExact:
		return fmt.Sprintf("Triggers when someone comments exactly: %q", t.Pattern)
	case ModeKeyword:
		return fmt.Sprintf("Triggers when a comment mentions any of: %s", strings.Join(Keywords(t.Pattern), ", "))
	default:
		return fmt.Sprintf("Triggers when someone comments: %q", t.Pattern)
	}
}
