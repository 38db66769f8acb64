package nats

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/nats-io/nats.go/jetstream"
)

// Subject pattern constants and helpers
const (
	streamName = "dmflow_events"

	// Event types
	EventTypePost    = "post"
	EventTypeTrigger = "trigger"
	EventTypeReply   = "reply"
	EventTypeStep    = "step"
	EventTypeLive    = "live"
	EventTypeComment = "comment"
)

// Token turns a workflow name into a single subject token.
// Example: "My Draft" -> "my-draft"
func Token(workflow string) string {
	if t := slug.Make(workflow); t != "" {
		return t
	}
	return "default"
}

// SubjectForWorkflow returns the wildcard subject pattern for all events of a workflow.
// Example: "dmflow.draft.>"
func SubjectForWorkflow(workflow string) string {
	return fmt.Sprintf("dmflow.%s.>", Token(workflow))
}

// SubjectForEvent returns the specific subject for an event type in a workflow.
// Example: "dmflow.draft.trigger"
func SubjectForEvent(workflow, eventType string) string {
	return fmt.Sprintf("dmflow.%s.%s", Token(workflow), eventType)
}

// SetupStream creates or updates the JetStream stream for dmflow events.
// Storage is in memory: nothing outlives the process.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"dmflow.>"},
		Storage:  jetstream.MemoryStorage,
	})
}
