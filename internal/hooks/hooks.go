// Package hooks runs user-configured shell commands on workflow events.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/dmflow/internal/workflow"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".dmflow.hooks.yml"

// LoadConfig loads the hooks configuration from the working directory.
// Returns nil if the config file doesn't exist (hooks are optional).
// Returns an error only if the file exists but cannot be parsed.
func LoadConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No hooks config found at %s", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	logger.Debug("Loaded hooks config from %s (version: %d)", configPath, cfg.Version)
	return &cfg, nil
}

// Variables describes the workflow a hook runs for. Workflow and PostID are
// expanded in the command ({{workflow}}, {{post_id}}); every field is also
// exported to the hook's environment as DMFLOW_*.
type Variables struct {
	Workflow string
	PostID   string
	Author   string
	Mode     string
	Pattern  string
	Reply    string
}

// VariablesFor collects hook variables from state.
func VariablesFor(state workflow.State) Variables {
	vars := Variables{
		Workflow: state.Name(),
		Mode:     string(state.Trigger.Mode),
		Pattern:  state.Trigger.Pattern,
		Reply:    state.Reply,
	}
	if state.Post != nil {
		vars.PostID = state.Post.ID
		vars.Author = state.Post.Author
	}
	return vars
}

// env returns the DMFLOW_* environment entries for vars.
func (v Variables) env() []string {
	return []string{
		"DMFLOW_WORKFLOW=" + v.Workflow,
		"DMFLOW_POST_ID=" + v.PostID,
		"DMFLOW_POST_AUTHOR=" + v.Author,
		"DMFLOW_TRIGGER_MODE=" + v.Mode,
		"DMFLOW_TRIGGER_PATTERN=" + v.Pattern,
		"DMFLOW_REPLY=" + v.Reply,
	}
}

// Execute runs a hook command and returns its output.
// On error, returns an error message as output and nil error (graceful degradation).
// Only returns error for context cancellation.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	// Expand template variables in command
	command := expandVariables(hook.Command, vars)
	logger.Debug("Executing hook command: %s", command)

	// Determine timeout
	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	// Execute command via shell
	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), vars.env()...)

	// Capture stdout and stderr separately
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// Check for context cancellation (propagate this)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String()), nil
	}

	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		output := stdout.String()
		if stderr.Len() > 0 {
			output += "\n[stderr]\n" + stderr.String()
		}
		return fmt.Sprintf("[Hook command failed: %v]\n%s", err, output), nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		logger.Debug("Hook stderr: %s", stderr.String())
		output += "\n[stderr]\n" + stderr.String()
	}

	logger.Debug("Hook executed successfully, output length: %d bytes", len(output))
	return output, nil
}

// ExecuteAll runs hooks in order and joins their non-empty outputs with a
// blank line. Stops at the first context cancellation.
func ExecuteAll(ctx context.Context, hooks []*HookConfig, workDir string, vars Variables) (string, error) {
	var outputs []string
	for _, hook := range hooks {
		output, err := Execute(ctx, hook, workDir, vars)
		if err != nil {
			return "", err
		}
		if output != "" {
			outputs = append(outputs, output)
		}
	}
	return strings.Join(outputs, "\n"), nil
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	return strings.NewReplacer(
		"{{workflow}}", vars.Workflow,
		"{{post_id}}", vars.PostID,
	).Replace(command)
}

// Example returns a starter configuration with a single on_live hook.
func Example() *Config {
	return &Config{
		Version: 1,
		Hooks: HooksConfig{
			OnLive: []*HookConfig{
				{Command: `echo "{{workflow}} is live on post {{post_id}}"`, Timeout: DefaultTimeout},
			},
		},
	}
}

// WriteConfig writes cfg to the hooks file in workDir.
func WriteConfig(workDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal hooks config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(workDir, ConfigFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write hooks config: %w", err)
	}
	return nil
}
