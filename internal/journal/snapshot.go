package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/dmflow/internal/nats"
	"github.com/mark3labs/dmflow/internal/preview"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// Change is a workflow transition waiting to be recorded.
type Change struct {
	Type   string
	Action string
	Data   string
	Meta   any
}

// commentMeta carries the generated fields of a test comment.
type commentMeta struct {
	ID     string    `json:"id"`
	Author string    `json:"author"`
	At     time.Time `json:"at"`
}

func (c Change) event(workflow string) (Event, error) {
	event := Event{
		Workflow: workflow,
		Type:     c.Type,
		Action:   c.Action,
		Data:     c.Data,
	}
	if c.Meta != nil {
		meta, err := json.Marshal(c.Meta)
		if err != nil {
			return Event{}, fmt.Errorf("failed to marshal meta: %w", err)
		}
		event.Meta = meta
	}
	return event, nil
}

// SelectPost records the monitored post.
func SelectPost(id string) Change {
	return Change{Type: nats.EventTypePost, Action: "select", Data: id}
}

// SetTriggerPattern records a new trigger pattern.
func SetTriggerPattern(pattern string) Change {
	return Change{Type: nats.EventTypeTrigger, Action: "pattern", Data: pattern}
}

// SetTriggerMode records a new trigger mode.
func SetTriggerMode(mode trigger.Mode) Change {
	return Change{Type: nats.EventTypeTrigger, Action: "mode", Data: string(mode)}
}

// SetReply records a new reply message.
func SetReply(message string) Change {
	return Change{Type: nats.EventTypeReply, Action: "set", Data: message}
}

// Next records a step forward.
func Next() Change {
	return Change{Type: nats.EventTypeStep, Action: "next"}
}

// Previous records a step back.
func Previous() Change {
	return Change{Type: nats.EventTypeStep, Action: "previous"}
}

// GoLive records activation.
func GoLive() Change {
	return Change{Type: nats.EventTypeLive, Action: "go"}
}

// AddComment records a test comment typed into the preview.
func AddComment(c preview.Comment) Change {
	return Change{
		Type:   nats.EventTypeComment,
		Action: "add",
		Data:   c.Text,
		Meta:   commentMeta{ID: c.ID, Author: c.Author, At: c.At},
	}
}

// Options configures the snapshot a replay starts from.
type Options struct {
	Mode    trigger.Mode    // Initial trigger mode
	Preview preview.Options // Simulator settings
}

// Snapshot is a workflow rebuilt from its events.
type Snapshot struct {
	Workflow string
	State    workflow.State
	Preview  *preview.Simulator
	Events   int
}

// NewSnapshot returns an empty snapshot for workflow.
func NewSnapshot(name string, opts Options) *Snapshot {
	mode := opts.Mode
	if mode == "" {
		mode = trigger.ModeExact
	}
	return &Snapshot{
		Workflow: name,
		State:    workflow.New(mode),
		Preview:  preview.New(opts.Preview),
	}
}

// Apply reduces event into the snapshot. Transitions go through the same
// gated methods the builder uses, so replay yields the state the builder saw.
func (sn *Snapshot) Apply(event Event) {
	sn.Events++

	switch event.Type {
	case nats.EventTypePost:
		p, err := workflow.FindPost(event.Data)
		if err != nil {
			logger.Warn("Ignoring post event: %v", err)
			return
		}
		sn.State = sn.State.SelectPost(p)

	case nats.EventTypeTrigger:
		switch event.Action {
		case "pattern":
			sn.State = sn.State.SetTriggerPattern(event.Data)
		case "mode":
			mode, err := trigger.ParseMode(event.Data)
			if err != nil {
				logger.Warn("Ignoring trigger event: %v", err)
				return
			}
			sn.State = sn.State.SetTriggerMode(mode)
		}

	case nats.EventTypeReply:
		sn.State = sn.State.SetReplyMessage(event.Data)

	case nats.EventTypeStep:
		switch event.Action {
		case "next":
			sn.State = sn.State.Next()
		case "previous":
			sn.State = sn.State.Previous()
		}

	case nats.EventTypeLive:
		sn.State = sn.State.GoLive()

	case nats.EventTypeComment:
		var meta commentMeta
		_ = json.Unmarshal(event.Meta, &meta)
		if meta.ID == "" {
			meta.ID = event.ID
		}
		if meta.At.IsZero() {
			meta.At = event.Timestamp
		}
		sn.Preview.Restore(preview.Comment{
			ID:     meta.ID,
			Text:   event.Data,
			Author: meta.Author,
			At:     meta.At,
		})
	}
}
