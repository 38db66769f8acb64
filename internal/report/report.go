// Package report renders a workflow and its simulated exchanges as a YAML
// document or a markdown summary.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/dmflow/internal/preview"
	"github.com/mark3labs/dmflow/internal/reply"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/workflow"
	"gopkg.in/yaml.v3"
)

// Document is the serializable view of a workflow.
type Document struct {
	Name         string             `yaml:"name" json:"name"`
	Status       workflow.Status    `yaml:"status" json:"status"`
	Step         string             `yaml:"step" json:"step"`
	Post         *workflow.Post     `yaml:"post,omitempty" json:"post,omitempty"`
	Trigger      trigger.Trigger    `yaml:"trigger" json:"trigger"`
	Description  string             `yaml:"description" json:"description"`
	Reply        string             `yaml:"reply" json:"reply"`
	Placeholders []string           `yaml:"placeholders,omitempty" json:"placeholders,omitempty"`
	Exchanges    []preview.Exchange `yaml:"exchanges,omitempty" json:"exchanges,omitempty"`
}

// Build collects state and the simulator's exchanges into a Document.
// sim may be nil.
func Build(state workflow.State, sim *preview.Simulator) Document {
	doc := Document{
		Name:        state.Name(),
		Status:      state.Status(),
		Step:        state.Step.String(),
		Post:        state.Post,
		Trigger:     state.Trigger,
		Description: state.Trigger.Describe(),
		Reply:       state.Reply,
	}
	for _, p := range reply.Tokens(state.Reply) {
		doc.Placeholders = append(doc.Placeholders, string(p))
	}
	if sim != nil {
		doc.Exchanges = sim.Exchanges(state)
	}
	return doc
}

// YAML encodes the document.
func YAML(doc Document) (string, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encoding workflow: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding workflow: %w", err)
	}
	return b.String(), nil
}

// Markdown renders state and the simulated comments as a markdown summary.
func Markdown(state workflow.State, sim *preview.Simulator) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Workflow: %s\n\n", state.Name())
	fmt.Fprintf(&b, "**Status:** %s | **Step %d/%d:** %s\n\n",
		state.Status(), int(state.Step)+1, len(workflow.Steps()), state.Step.Title())

	b.WriteString("## Post\n\n")
	if p := state.Post; p != nil {
		fmt.Fprintf(&b, "@%s (%s) | %s likes | %s comments | %s\n\n",
			p.Author, p.Kind, humanize.Comma(int64(p.Likes)), humanize.Comma(int64(p.Comments)), p.Age)
		fmt.Fprintf(&b, "> %s\n\n", p.Title())
	} else {
		b.WriteString("_No post selected._\n\n")
	}

	b.WriteString("## Trigger\n\n")
	if state.Trigger.IsSet() {
		fmt.Fprintf(&b, "%s (%s)\n\n", state.Trigger.Describe(), state.Trigger.Mode.Label())
	} else {
		fmt.Fprintf(&b, "_Not configured._ Mode: %s\n\n", state.Trigger.Mode.Label())
	}

	b.WriteString("## Reply\n\n")
	if state.HasReply() {
		fmt.Fprintf(&b, "```text\n%s\n```\n\n", state.Reply)
		if tokens := reply.Tokens(state.Reply); len(tokens) > 0 {
			names := make([]string, len(tokens))
			for i, t := range tokens {
				names[i] = "`" + string(t) + "`"
			}
			fmt.Fprintf(&b, "Placeholders: %s\n\n", strings.Join(names, ", "))
		}
	} else {
		b.WriteString("_No message yet._\n\n")
	}

	if sim == nil {
		return strings.TrimRight(b.String(), "\n") + "\n"
	}

	b.WriteString("## Test comments\n\n")
	exchanges := sim.Exchanges(state)
	if len(exchanges) == 0 {
		b.WriteString("_No test comments yet._\n")
	}
	for _, ex := range exchanges {
		fmt.Fprintf(&b, "- **@%s** (%s): %q", ex.Comment.Author, sim.Label(ex.Comment), ex.Comment.Text)
		if ex.Matched {
			fmt.Fprintf(&b, " -> DM sent: %s\n", ex.Reply)
		} else {
			b.WriteString(" -> no automation triggered\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
