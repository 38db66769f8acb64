// Package testfixtures provides workflow fixtures, key helpers and mocks for
// builder UI tests.
package testfixtures

import (
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// SamplePost returns the first catalog post.
func SamplePost() workflow.Post {
	return workflow.SamplePosts()[0]
}

// EmptyState returns a fresh workflow in exact mode.
func EmptyState() workflow.State {
	return workflow.New(trigger.ModeExact)
}

// StateWithPost returns a workflow with the sample post selected, still on
// the first step.
func StateWithPost() workflow.State {
	return EmptyState().SelectPost(SamplePost())
}

// ReadyState returns a complete workflow on the last step, not yet live.
func ReadyState() workflow.State {
	return StateWithPost().
		Next().
		SetTriggerMode(trigger.ModeContains).
		SetTriggerPattern("interested").
		Next().
		SetReplyMessage("Hi @{{username}}! Here is the link.")
}

// LiveState returns ReadyState after going live.
func LiveState() workflow.State {
	return ReadyState().GoLive()
}
