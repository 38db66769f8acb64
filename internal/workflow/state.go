// Package workflow holds the comment-to-DM workflow being built: the selected
// post, the trigger, the reply and the wizard step. State values are
// immutable snapshots; every transition returns a new State.
package workflow

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/mark3labs/dmflow/internal/trigger"
)

// Step is a wizard step index.
type Step int

const (
	StepSelectContent    Step = iota // Pick the post to monitor
	StepConfigureTrigger             // Define the comment trigger
	StepComposeReply                 // Write the DM reply
)

// LastStep is the final wizard step.
const LastStep = StepComposeReply

// Steps returns all wizard steps in order.
func Steps() []Step {
	return []Step{StepSelectContent, StepConfigureTrigger, StepComposeReply}
}

// String returns the machine name of the step.
func (s Step) String() string {
	switch s {
	case StepSelectContent:
		return "select_content"
	case StepConfigureTrigger:
		return "configure_trigger"
	case StepComposeReply:
		return "compose_reply"
	default:
		return "unknown"
	}
}

// Title returns the display title of the step.
func (s Step) Title() string {
	switch s {
	case StepSelectContent:
		return "Select Post/Reel"
	case StepConfigureTrigger:
		return "Configure Comment Trigger"
	case StepComposeReply:
		return "Set DM Response"
	default:
		return ""
	}
}

// Description returns the one-line explanation shown under the step title.
func (s Step) Description() string {
	switch s {
	case StepSelectContent:
		return "Choose content to monitor for comments"
	case StepConfigureTrigger:
		return "Set up when comments should trigger DM automation"
	case StepComposeReply:
		return "Create the DM message to send automatically"
	default:
		return ""
	}
}

// Requirement names the field a step needs before the wizard can move on.
func (s Step) Requirement() string {
	switch s {
	case StepSelectContent:
		return "Select a post to continue"
	case StepConfigureTrigger:
		return "Enter a trigger comment to continue"
	default:
		return "Complete all steps to activate your automation"
	}
}

// StepStatus is the completion state of a single step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepCompleted StepStatus = "completed"
)

// Status is the overall workflow status.
type Status string

const (
	StatusIncomplete Status = "Incomplete"
	StatusReady      Status = "Ready"
	StatusActive     Status = "Active"
)

// State is a snapshot of the workflow under construction.
type State struct {
	Post    *Post           `json:"post,omitempty" yaml:"post,omitempty"`
	Trigger trigger.Trigger `json:"trigger" yaml:"trigger"`
	Reply   string          `json:"reply" yaml:"reply"`
	Live    bool            `json:"live" yaml:"live"`
	Step    Step            `json:"step" yaml:"step"`
}

// New returns an empty workflow whose trigger starts in mode.
func New(mode trigger.Mode) State {
	return State{Trigger: trigger.Trigger{Mode: mode}}
}

// SelectPost sets the monitored post.
func (s State) SelectPost(p Post) State {
	s.Post = &p
	return s
}

// SetTriggerPattern replaces the trigger pattern.
func (s State) SetTriggerPattern(pattern string) State {
	s.Trigger.Pattern = pattern
	return s
}

// SetTriggerMode replaces the trigger mode.
func (s State) SetTriggerMode(mode trigger.Mode) State {
	s.Trigger.Mode = mode
	return s
}

// SetReplyMessage replaces the reply message.
func (s State) SetReplyMessage(message string) State {
	s.Reply = message
	return s
}

// HasPost reports whether a post is selected.
func (s State) HasPost() bool {
	return s.Post != nil
}

// HasReply reports whether the reply is non-blank.
func (s State) HasReply() bool {
	return strings.TrimSpace(s.Reply) != ""
}

// populated reports whether the required field of step is filled in.
func (s State) populated(step Step) bool {
	switch step {
	case StepSelectContent:
		return s.HasPost()
	case StepConfigureTrigger:
		return s.Trigger.IsSet()
	case StepComposeReply:
		return s.HasReply()
	default:
		return false
	}
}

// CanProceed reports whether the current step's required field is filled in.
func (s State) CanProceed() bool {
	return s.populated(s.Step)
}

// CanGoLive reports whether post, trigger and reply are all filled in.
func (s State) CanGoLive() bool {
	return s.HasPost() && s.Trigger.IsSet() && s.HasReply()
}

// Next advances one step when the current step is complete. It never moves
// past the last step.
func (s State) Next() State {
	if !s.CanProceed() {
		return s
	}
	if s.Step < LastStep {
		s.Step++
	}
	return s
}

// Previous moves back one step, stopping at the first.
func (s State) Previous() State {
	if s.Step > StepSelectContent {
		s.Step--
	}
	return s
}

// GoLive sets the live flag when the workflow is complete. Calling it again
// has no further effect and there is no way back.
func (s State) GoLive() State {
	if s.CanGoLive() {
		s.Live = true
	}
	return s
}

// StepStatus reports whether step's required field is filled in.
func (s State) StepStatus(step Step) StepStatus {
	if s.populated(step) {
		return StepCompleted
	}
	return StepPending
}

// Status summarizes the workflow for the status badge.
func (s State) Status() Status {
	switch {
	case s.Live:
		return StatusActive
	case s.CanGoLive():
		return StatusReady
	default:
		return StatusIncomplete
	}
}

// Name returns a subject-safe identifier derived from the post author and
// trigger pattern.
func (s State) Name() string {
	var parts []string
	if s.Post != nil {
		parts = append(parts, s.Post.Author)
	}
	if s.Trigger.IsSet() {
		parts = append(parts, s.Trigger.Pattern)
	}
	name := slug.Make(strings.Join(parts, " "))
	if name == "" {
		return "untitled-workflow"
	}
	return name
}
