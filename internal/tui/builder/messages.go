package builder

// SubmitMsg is sent when the user presses enter on a step that completes
// with enter.
type SubmitMsg struct{}

// PostSelectedMsg is sent when a post is picked from the list.
type PostSelectedMsg struct {
	ID string
}

// ReplyEditedMsg is sent when the external editor returns.
type ReplyEditedMsg struct {
	Content string
}

// toastExpiredMsg hides the toast with the given sequence number.
type toastExpiredMsg struct {
	seq int
}

// HookFinishedMsg carries the output of the on_live hooks.
type HookFinishedMsg struct {
	Output string
	Err    error
}
