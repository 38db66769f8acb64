// Package render turns workflow summaries into terminal output: markdown via
// glamour and highlighted source via chroma.
package render

import (
	"bytes"
	"strings"

	"charm.land/glamour/v2"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// maxMarkdownWidth caps the wrap width for readability.
const maxMarkdownWidth = 120

// Markdown renders content with glamour's dark style, wrapped at width.
// Falls back to the raw content if rendering fails.
func Markdown(content string, width int) string {
	if width > maxMarkdownWidth {
		width = maxMarkdownWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}

// Highlight syntax-highlights source for the terminal. The lexer is picked
// from fileName, then from the content. background, when non-empty, replaces
// every token background with the given hex color. Falls back to the
// unchanged source on any error.
func Highlight(source, fileName, background string) string {
	lexer := lexers.Match(fileName)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	if formatter == nil {
		return source
	}

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	if background != "" {
		bg := chroma.MustParseColour(background)
		transformed, err := style.Builder().Transform(func(entry chroma.StyleEntry) chroma.StyleEntry {
			entry.Background = bg
			return entry
		}).Build()
		if err == nil {
			style = transformed
		}
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return buf.String()
}
