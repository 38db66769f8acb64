package builder

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/mark3labs/dmflow/internal/reply"
	"github.com/mark3labs/dmflow/internal/tui/theme"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// kindFilters is the ctrl+f cycle order.
var kindFilters = []workflow.Kind{workflow.KindAll, workflow.KindPost, workflow.KindReel}

// PostStep lets the user search the sample catalog and pick a post.
type PostStep struct {
	search   textinput.Model
	kind     int // Index into kindFilters
	posts    []workflow.Post
	cursor   int
	selected string // ID of the selected post
	width    int
	height   int
}

// NewPostStep creates a post picker with the full catalog listed.
func NewPostStep() *PostStep {
	p := &PostStep{
		search: newTextInput("Search: ", "caption or @author", 40),
		width:  60,
		height: 14,
	}
	p.search.Focus()
	p.refilter()
	return p
}

// Init starts the cursor blinking.
func (p *PostStep) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the post step.
func (p *PostStep) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "up", "ctrl+k":
			if p.cursor > 0 {
				p.cursor--
			}
			return nil
		case "down", "ctrl+j":
			if p.cursor < len(p.posts)-1 {
				p.cursor++
			}
			return nil
		case "ctrl+f":
			p.kind = (p.kind + 1) % len(kindFilters)
			p.refilter()
			return nil
		case "enter":
			if len(p.posts) == 0 {
				return nil
			}
			id := p.posts[p.cursor].ID
			if p.selected == id {
				return func() tea.Msg { return SubmitMsg{} }
			}
			p.selected = id
			return func() tea.Msg { return PostSelectedMsg{ID: id} }
		}
	}

	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != before {
		p.refilter()
	}
	return cmd
}

// refilter recomputes the visible posts and keeps the cursor in range.
func (p *PostStep) refilter() {
	p.posts = workflow.FilterPosts(workflow.SamplePosts(), p.search.Value(), kindFilters[p.kind])
	if p.cursor >= len(p.posts) {
		p.cursor = max(len(p.posts)-1, 0)
	}
}

// Kind returns the active kind filter.
func (p *PostStep) Kind() workflow.Kind {
	return kindFilters[p.kind]
}

// Visible returns the posts matching the current search and filter.
func (p *PostStep) Visible() []workflow.Post {
	return p.posts
}

// Selected returns the ID of the selected post, or "".
func (p *PostStep) Selected() string {
	return p.selected
}

// Select marks id as selected and moves the cursor to it when visible.
func (p *PostStep) Select(id string) {
	p.selected = id
	for i, post := range p.posts {
		if post.ID == id {
			p.cursor = i
		}
	}
}

// SetSize updates the dimensions of the post step.
func (p *PostStep) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.search.SetWidth(max(width-len(p.search.Prompt)-2, 10))
}

// Focus focuses the search input.
func (p *PostStep) Focus() tea.Cmd {
	return p.search.Focus()
}

// Blur blurs the search input.
func (p *PostStep) Blur() {
	p.search.Blur()
}

// View renders the search box, filter chips and the post list.
func (p *PostStep) View() string {
	s := theme.Current().S()

	var chips []string
	for i, k := range kindFilters {
		label := "All"
		switch k {
		case workflow.KindPost:
			label = "Posts"
		case workflow.KindReel:
			label = "Reels"
		}
		if i == p.kind {
			chips = append(chips, s.Chip.Bold(true).Render(label))
		} else {
			chips = append(chips, s.Muted.Padding(0, 1).Render(label))
		}
	}

	var rows []string
	if len(p.posts) == 0 {
		rows = append(rows, s.Muted.Render("No posts found. Try adjusting your search or filter."))
	}
	for i, post := range p.posts {
		rows = append(rows, p.renderRow(post, i == p.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		p.search.View(),
		"",
		strings.Join(chips, " "),
		"",
		strings.Join(rows, "\n"),
		"",
		renderHintBar("↑↓", "navigate", "enter", "select", "ctrl+f", "filter", "tab", "buttons"),
	)
}

func (p *PostStep) renderRow(post workflow.Post, current bool) string {
	s := theme.Current().S()

	icon := "📷"
	if post.Kind == workflow.KindReel {
		icon = "🎬"
	}
	mark := "  "
	if post.ID == p.selected {
		mark = s.Success.Render("✓ ")
	}

	title := reply.Truncate(post.Title(), max(p.width-8, 20))
	meta := fmt.Sprintf("@%s • ♥ %s • 💬 %s • %s",
		post.Author, humanize.Comma(int64(post.Likes)), humanize.Comma(int64(post.Comments)), post.Age)

	text := fmt.Sprintf("%s%s %s\n   %s", mark, icon, title, s.Muted.Render(meta))
	if current {
		return s.ListItemSelected.Render(text)
	}
	return s.ListItem.Render(text)
}
