package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/dmflow/internal/hooks"
	"github.com/mark3labs/dmflow/internal/journal"
	"github.com/mark3labs/dmflow/internal/reply"
	"github.com/mark3labs/dmflow/internal/report"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/workflow"
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the workflow builder tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_posts",
			mcp.WithDescription("List the sample posts and reels that can be monitored"),
			mcp.WithString("search", mcp.Description("Case-insensitive search over caption and author")),
			mcp.WithString("kind", mcp.Description("Filter by kind"), mcp.Enum("all", "post", "reel")),
		),
		s.handleListPosts,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("select_post",
			mcp.WithDescription("Select the post whose comments the automation monitors"),
			mcp.WithString("post_id", mcp.Required(), mcp.Description("ID from list_posts")),
		),
		s.handleSelectPost,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("configure_trigger",
			mcp.WithDescription("Set the comment trigger mode and/or pattern"),
			mcp.WithString("mode", mcp.Description("How comments are matched"), mcp.Enum("exact", "keyword", "contains")),
			mcp.WithString("pattern", mcp.Description("Comment text; comma-separated list in keyword mode")),
		),
		s.handleConfigureTrigger,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_reply",
			mcp.WithDescription("Set the DM sent when a comment matches"),
			mcp.WithString("message", mcp.Required(), mcp.Description("Reply text, may contain placeholders")),
		),
		s.handleSetReply,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("insert_placeholder",
			mcp.WithDescription("Insert a personalization placeholder into the reply"),
			mcp.WithString("placeholder", mcp.Required(),
				mcp.Description("Placeholder name"),
				mcp.Enum("user_name", "username", "comment", "post_title"),
			),
			mcp.WithNumber("position", mcp.Description("Character offset to insert at (default: end of message)")),
		),
		s.handleInsertPlaceholder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("next_step",
			mcp.WithDescription("Advance the wizard when the current step is complete"),
		),
		s.handleNextStep,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("previous_step",
			mcp.WithDescription("Go back one wizard step"),
		),
		s.handlePreviousStep,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("go_live",
			mcp.WithDescription("Activate the automation once post, trigger and reply are set"),
		),
		s.handleGoLive,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("submit_test_comment",
			mcp.WithDescription("Simulate a comment on the monitored post and report whether a DM would be sent"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Comment text")),
		),
		s.handleSubmitTestComment,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("preview",
			mcp.WithDescription("Show the workflow summary and every simulated exchange"),
		),
		s.handlePreview,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("match_comment",
			mcp.WithDescription("Check a comment against the configured trigger or an ad-hoc one without recording anything"),
			mcp.WithString("comment", mcp.Required(), mcp.Description("Comment text")),
			mcp.WithString("mode", mcp.Description("Override mode"), mcp.Enum("exact", "keyword", "contains")),
			mcp.WithString("pattern", mcp.Description("Override pattern")),
		),
		s.handleMatchComment,
	)
}

// stringArg returns args[key] when it is a string.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok
}

// withSnapshot loads the workflow, runs fn and turns its result into a tool
// result. Errors from fn are reported to the caller as "error: ..." text.
func (s *Server) withSnapshot(ctx context.Context, fn func(snap *journal.Snapshot) (string, error)) (*mcp.CallToolResult, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap, err := s.store.LoadState(ctx, s.workflow, s.opts)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: failed to load workflow: %v", err)), nil
	}

	out, err := fn(snap)
	if err != nil {
		return mcp.NewToolResultText("error: " + err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

// stepLine formats the current wizard position.
func stepLine(st workflow.State) string {
	return fmt.Sprintf("Step %d/%d: %s", int(st.Step)+1, len(workflow.Steps()), st.Step.Title())
}

func (s *Server) handleListPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	search, _ := stringArg(args, "search")
	kindArg, _ := stringArg(args, "kind")

	kind, err := workflow.ParseKind(kindArg)
	if err != nil {
		return mcp.NewToolResultText("error: " + err.Error()), nil
	}

	posts := workflow.FilterPosts(workflow.SamplePosts(), search, kind)
	if len(posts) == 0 {
		return mcp.NewToolResultText("No posts found"), nil
	}

	var b strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&b, "[%s] %s by @%s (%s likes, %s comments, %s)\n    %s\n",
			p.ID, p.Kind, p.Author,
			humanize.Comma(int64(p.Likes)), humanize.Comma(int64(p.Comments)), p.Age,
			reply.Truncate(p.Title(), 80))
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

func (s *Server) handleSelectPost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := stringArg(request.GetArguments(), "post_id")
	if !ok || id == "" {
		return mcp.NewToolResultText("error: missing 'post_id' parameter"), nil
	}

	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		p, err := workflow.FindPost(id)
		if err != nil {
			return "", err
		}
		if err := s.store.Commit(ctx, snap, journal.SelectPost(p.ID)); err != nil {
			return "", err
		}
		return fmt.Sprintf("Selected %s by @%s: %s", p.Kind, p.Author, reply.Truncate(p.Title(), 80)), nil
	})
}

func (s *Server) handleConfigureTrigger(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	modeArg, hasMode := stringArg(args, "mode")
	pattern, hasPattern := stringArg(args, "pattern")
	if !hasMode && !hasPattern {
		return mcp.NewToolResultText("error: provide 'mode' and/or 'pattern'"), nil
	}

	var mode trigger.Mode
	if hasMode {
		var err error
		if mode, err = trigger.ParseMode(modeArg); err != nil {
			return mcp.NewToolResultText("error: " + err.Error()), nil
		}
	}

	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		if hasPattern {
			candidate := trigger.Trigger{Mode: snap.State.Trigger.Mode, Pattern: pattern}
			if hasMode {
				candidate.Mode = mode
			}
			if err := candidate.Validate(); err != nil {
				return "", err
			}
		}
		if hasMode {
			if err := s.store.Commit(ctx, snap, journal.SetTriggerMode(mode)); err != nil {
				return "", err
			}
		}
		if hasPattern {
			if err := s.store.Commit(ctx, snap, journal.SetTriggerPattern(pattern)); err != nil {
				return "", err
			}
		}
		t := snap.State.Trigger
		return fmt.Sprintf("%s\nMode: %s (%s)", t.Describe(), t.Mode.Label(), t.Mode.Description()), nil
	})
}

func (s *Server) handleSetReply(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, ok := stringArg(request.GetArguments(), "message")
	if !ok {
		return mcp.NewToolResultText("error: missing 'message' parameter"), nil
	}
	if strings.TrimSpace(message) == "" {
		return mcp.NewToolResultText("error: message is empty"), nil
	}

	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		if err := s.store.Commit(ctx, snap, journal.SetReply(message)); err != nil {
			return "", err
		}
		return "Reply set:\n" + snap.State.Reply, nil
	})
}

func (s *Server) handleInsertPlaceholder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	name, ok := stringArg(args, "placeholder")
	if !ok {
		return mcp.NewToolResultText("error: missing 'placeholder' parameter"), nil
	}
	token, err := reply.ParsePlaceholder(name)
	if err != nil {
		return mcp.NewToolResultText("error: " + err.Error()), nil
	}

	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		caret := utf8.RuneCountInString(snap.State.Reply)
		// JSON numbers come as float64
		if pos, ok := args["position"].(float64); ok {
			caret = int(pos)
		}
		message, caret := reply.InsertAt(snap.State.Reply, caret, token)
		if err := s.store.Commit(ctx, snap, journal.SetReply(message)); err != nil {
			return "", err
		}
		return fmt.Sprintf("Inserted %s (cursor at %d):\n%s", token, caret, message), nil
	})
}

func (s *Server) handleNextStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		st := snap.State
		if !st.CanProceed() {
			return fmt.Sprintf("%s\n%s", stepLine(st), st.Step.Requirement()), nil
		}
		if st.Step == workflow.LastStep {
			return stepLine(st) + "\nAlready on the last step; use go_live to activate.", nil
		}
		if err := s.store.Commit(ctx, snap, journal.Next()); err != nil {
			return "", err
		}
		return stepLine(snap.State), nil
	})
}

func (s *Server) handlePreviousStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		if snap.State.Step == workflow.StepSelectContent {
			return stepLine(snap.State) + "\nAlready on the first step.", nil
		}
		if err := s.store.Commit(ctx, snap, journal.Previous()); err != nil {
			return "", err
		}
		return stepLine(snap.State), nil
	})
}

func (s *Server) handleGoLive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		st := snap.State
		if st.Live {
			return "Automation is already live.", nil
		}
		if !st.CanGoLive() {
			return "", errors.New(workflow.LastStep.Requirement())
		}
		if err := s.store.Commit(ctx, snap, journal.GoLive()); err != nil {
			return "", err
		}
		out := fmt.Sprintf("Automation is live on @%s's %s. %s", st.Post.Author, st.Post.Kind, st.Trigger.Describe())

		onLive := s.hooks.OnLive()
		if len(onLive) == 0 {
			return out, nil
		}
		hookOutput, err := hooks.ExecuteAll(ctx, onLive, s.workDir, hooks.VariablesFor(snap.State))
		if err != nil {
			return "", fmt.Errorf("on_live hooks: %w", err)
		}
		if hookOutput != "" {
			out += "\n\non_live hooks:\n" + strings.TrimRight(hookOutput, "\n")
		}
		return out, nil
	})
}

func (s *Server) handleSubmitTestComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := stringArg(request.GetArguments(), "text")
	if !ok {
		return mcp.NewToolResultText("error: missing 'text' parameter"), nil
	}

	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		c, ok := snap.Preview.Submit(text)
		if !ok {
			return "", errors.New("comment is empty")
		}
		// Submit already logged the comment locally; only persist it.
		if err := s.store.Record(ctx, snap.Workflow, journal.AddComment(c)); err != nil {
			return "", err
		}

		ex := snap.Preview.Exchanges(snap.State)[0]
		if ex.Matched {
			return fmt.Sprintf("@%s commented %q\nDM sent: %s", c.Author, c.Text, ex.Reply), nil
		}
		return fmt.Sprintf("@%s commented %q\nNo automation triggered.", c.Author, c.Text), nil
	})
}

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSnapshot(ctx, func(snap *journal.Snapshot) (string, error) {
		return report.Markdown(snap.State, snap.Preview), nil
	})
}

func (s *Server) handleMatchComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	comment, ok := stringArg(args, "comment")
	if !ok {
		return mcp.NewToolResultText("error: missing 'comment' parameter"), nil
	}

	s.writeMu.Lock()
	snap, err := s.store.LoadState(ctx, s.workflow, s.opts)
	s.writeMu.Unlock()
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: failed to load workflow: %v", err)), nil
	}

	t := snap.State.Trigger
	if modeArg, ok := stringArg(args, "mode"); ok {
		if t.Mode, err = trigger.ParseMode(modeArg); err != nil {
			return mcp.NewToolResultText("error: " + err.Error()), nil
		}
	}
	if pattern, ok := stringArg(args, "pattern"); ok {
		t.Pattern = pattern
	}
	if !t.IsSet() {
		return mcp.NewToolResultText("error: no trigger pattern configured"), nil
	}

	verdict := "no match"
	if t.Match(comment) {
		verdict = "match"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n%s (%s)", verdict, t.Describe(), t.Mode.Label())), nil
}
