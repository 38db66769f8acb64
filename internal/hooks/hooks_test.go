package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/workflow"
)

func testVars() Variables {
	return Variables{
		Workflow: "travel_lover-interested",
		PostID:   "1",
		Author:   "travel_lover",
		Mode:     "contains",
		Pattern:  "interested; rm -rf /",
		Reply:    "Thanks!",
	}
}

func TestExecuteAll(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()

	tests := []struct {
		name     string
		hooks    []*HookConfig
		expected string
	}{
		{
			name:     "no hooks",
			hooks:    []*HookConfig{},
			expected: "",
		},
		{
			name: "single hook",
			hooks: []*HookConfig{
				{Command: "echo 'deployed'", Timeout: 5},
			},
			expected: "deployed\n",
		},
		{
			name: "multiple hooks",
			hooks: []*HookConfig{
				{Command: "echo 'first'", Timeout: 5},
				{Command: "true", Timeout: 5},
				{Command: "echo 'second'", Timeout: 5},
			},
			expected: "first\n\nsecond\n",
		},
		{
			name: "expanded variables",
			hooks: []*HookConfig{
				{Command: "echo {{workflow}} {{post_id}}", Timeout: 5},
			},
			expected: "travel_lover-interested 1\n",
		},
		{
			name: "environment variables",
			hooks: []*HookConfig{
				{Command: `echo "$DMFLOW_TRIGGER_MODE:$DMFLOW_TRIGGER_PATTERN"`, Timeout: 5},
			},
			expected: "contains:interested; rm -rf /\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := ExecuteAll(ctx, tt.hooks, workDir, testVars())
			if err != nil {
				t.Fatalf("ExecuteAll() error = %v", err)
			}
			if output != tt.expected {
				t.Errorf("ExecuteAll() output = %q, expected %q", output, tt.expected)
			}
		})
	}
}

func TestExecute_FailureIsReported(t *testing.T) {
	output, err := Execute(context.Background(), &HookConfig{Command: "echo oops >&2; exit 3"}, t.TempDir(), testVars())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(output, "[Hook command failed") || !strings.Contains(output, "oops") {
		t.Errorf("Execute() output = %q, want failure with stderr", output)
	}
}

func TestExecute_Timeout(t *testing.T) {
	output, err := Execute(context.Background(), &HookConfig{Command: "sleep 5", Timeout: 1}, t.TempDir(), testVars())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(output, "[Hook timed out after 1s]") {
		t.Errorf("Execute() output = %q, want timeout message", output)
	}
}

func TestExecuteAll_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	hooks := []*HookConfig{
		{Command: "echo 'test'", Timeout: 5},
	}

	if _, err := ExecuteAll(ctx, hooks, t.TempDir(), testVars()); err == nil {
		t.Error("ExecuteAll() expected error for cancelled context, got nil")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil || cfg != nil {
		t.Fatalf("LoadConfig() without file = %v, %v; want nil, nil", cfg, err)
	}
	if cfg.OnLive() != nil {
		t.Error("OnLive() on nil config should be nil")
	}

	content := "version: 1\nhooks:\n  on_live:\n    - command: echo live\n      timeout: 10\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Hooks.OnLive) != 1 || cfg.Hooks.OnLive[0].Command != "echo live" || cfg.Hooks.OnLive[0].Timeout != 10 {
		t.Errorf("LoadConfig() = %+v", cfg.Hooks)
	}

	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("hooks: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Error("LoadConfig() expected parse error")
	}
}

func TestVariablesFor(t *testing.T) {
	post, err := workflow.FindPost("1")
	if err != nil {
		t.Fatal(err)
	}
	state := workflow.New(trigger.ModeKeyword).SelectPost(post).SetTriggerPattern("price").SetReplyMessage("hi")

	vars := VariablesFor(state)
	if vars.PostID != "1" || vars.Author != "travel_lover" || vars.Mode != "keyword" || vars.Pattern != "price" {
		t.Errorf("VariablesFor() = %+v", vars)
	}
	if vars.Workflow != state.Name() {
		t.Errorf("VariablesFor().Workflow = %q, want %q", vars.Workflow, state.Name())
	}

	if empty := VariablesFor(workflow.New(trigger.ModeExact)); empty.PostID != "" {
		t.Errorf("VariablesFor(empty).PostID = %q", empty.PostID)
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteConfig(dir, Example()); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Version != 1 || len(cfg.Hooks.OnLive) != 1 {
		t.Fatalf("LoadConfig() = %+v", cfg)
	}

	output, err := ExecuteAll(context.Background(), cfg.Hooks.OnLive, dir, testVars())
	if err != nil {
		t.Fatalf("ExecuteAll() error = %v", err)
	}
	if output != "travel_lover-interested is live on post 1\n" {
		t.Errorf("ExecuteAll() output = %q", output)
	}
}
