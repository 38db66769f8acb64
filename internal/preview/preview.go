// Package preview simulates comments arriving on the monitored post and shows
// which of them would receive the automated reply.
package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mark3labs/dmflow/internal/reply"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// DefaultAuthors are the synthetic handles assigned to test comments, in
// rotation.
var DefaultAuthors = []string{"user123", "sarah.designs", "mike_fit", "coffee.addict", "jules_travels"}

// Comment is a test comment typed into the preview panel.
type Comment struct {
	ID     string    `json:"id" yaml:"id"`
	Text   string    `json:"text" yaml:"text"`
	Author string    `json:"author" yaml:"author"`
	At     time.Time `json:"at" yaml:"at"`
}

// Exchange is a logged comment paired with the reply it would receive now.
type Exchange struct {
	Comment Comment `json:"comment" yaml:"comment"`
	Matched bool    `json:"matched" yaml:"matched"`
	Reply   string  `json:"reply,omitempty" yaml:"reply,omitempty"`
}

// Options configures a Simulator. Authors are assigned in rotation by
// position in the log, so a restored log continues the same rotation.
type Options struct {
	Authors     []string         // Synthetic handles; DefaultAuthors when empty
	Personalize bool             // Substitute placeholders in reply bubbles
	Now         func() time.Time // Clock; time.Now when nil
}

// Simulator holds the append-only log of test comments.
type Simulator struct {
	comments    []Comment // Newest first
	authors     []string
	personalize bool
	now         func() time.Time
}

// New creates an empty simulator.
func New(opts Options) *Simulator {
	authors := opts.Authors
	if len(authors) == 0 {
		authors = DefaultAuthors
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Simulator{
		authors:     authors,
		personalize: opts.Personalize,
		now:         now,
	}
}

// Submit logs a test comment. Blank input is ignored and reported with
// ok=false; on success the caller should clear its input field.
func (s *Simulator) Submit(text string) (Comment, bool) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, false
	}

	c := Comment{
		ID:     uuid.NewString(),
		Text:   text,
		Author: s.authors[len(s.comments)%len(s.authors)],
		At:     s.now(),
	}
	s.Restore(c)
	return c, true
}

// Restore prepends an already-created comment, e.g. when replaying a journal.
func (s *Simulator) Restore(c Comment) {
	s.comments = append([]Comment{c}, s.comments...)
}

// Comments returns the logged comments, newest first.
func (s *Simulator) Comments() []Comment {
	out := make([]Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// Len returns the number of logged comments.
func (s *Simulator) Len() int {
	return len(s.comments)
}

// Exchanges evaluates every logged comment against the current trigger of
// state. Results are recomputed on every call.
func (s *Simulator) Exchanges(state workflow.State) []Exchange {
	exchanges := make([]Exchange, 0, len(s.comments))
	for _, c := range s.comments {
		ex := Exchange{Comment: c}
		if state.Trigger.IsSet() && state.Trigger.Match(c.Text) {
			ex.Matched = true
			ex.Reply = s.replyFor(state, c)
		}
		exchanges = append(exchanges, ex)
	}
	return exchanges
}

// replyFor returns the reply bubble text for a matched comment.
func (s *Simulator) replyFor(state workflow.State, c Comment) string {
	if !s.personalize {
		return state.Reply
	}
	vars := reply.Variables{
		UserName: c.Author,
		Username: c.Author,
		Comment:  c.Text,
	}
	if state.Post != nil {
		vars.PostTitle = state.Post.Title()
	}
	return reply.Render(state.Reply, vars)
}

// Label returns a relative timestamp label for c.
func (s *Simulator) Label(c Comment) string {
	return humanize.RelTime(c.At, s.now(), "ago", "from now")
}

// Transcript renders the simulated conversation as plain text, newest first.
func (s *Simulator) Transcript(state workflow.State) string {
	exchanges := s.Exchanges(state)
	if len(exchanges) == 0 {
		return "No test comments yet."
	}

	var b strings.Builder
	for i, ex := range exchanges {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "@%s commented (%s): %q\n", ex.Comment.Author, s.Label(ex.Comment), ex.Comment.Text)
		if ex.Matched {
			fmt.Fprintf(&b, "  ↳ You sent a DM: %s\n", ex.Reply)
		} else {
			b.WriteString("  ↳ no automation triggered\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
