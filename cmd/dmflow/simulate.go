package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/dmflow/internal/hooks"
	"github.com/mark3labs/dmflow/internal/journal"
	"github.com/mark3labs/dmflow/internal/render"
	"github.com/mark3labs/dmflow/internal/report"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/tui/theme"
	"github.com/mark3labs/dmflow/internal/workflow"
	"github.com/spf13/cobra"
)

var simulateFlags struct {
	name        string
	post        string
	mode        string
	pattern     string
	reply       string
	comments    []string
	live        bool
	personalize bool
	format      string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the builder headlessly and print the preview",
	Long: `Run the three builder steps from flags, submit test comments and print
the resulting preview.

Each step goes through the same gating as the builder: a missing post,
trigger or reply leaves the wizard on that step and the workflow is
reported as incomplete. The output is rebuilt by replaying the journal.`,
	Example: `  dmflow simulate --post 5 --mode contains --pattern interested \
    --reply 'Hi @{{username}}! Here is your link.' \
    --comment 'I am interested!' --comment 'nice pic'`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVarP(&simulateFlags.name, "name", "n", "simulation", "Workflow name used as the journal key")
	f.StringVar(&simulateFlags.post, "post", "", "ID of the post to monitor (see dmflow posts)")
	f.StringVarP(&simulateFlags.mode, "mode", "m", "", "Trigger mode: exact, keyword, contains (default: from config)")
	f.StringVarP(&simulateFlags.pattern, "pattern", "p", "", "Trigger pattern")
	f.StringVarP(&simulateFlags.reply, "reply", "r", "", "DM reply message")
	f.StringArrayVarP(&simulateFlags.comments, "comment", "c", nil, "Test comment to submit (repeatable)")
	f.BoolVar(&simulateFlags.live, "live", false, "Go live after the last step")
	f.BoolVar(&simulateFlags.personalize, "personalize", false, "Fill placeholders in preview replies (default: from config)")
	f.StringVarP(&simulateFlags.format, "format", "f", "text", "Output format: text, yaml, markdown")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	switch simulateFlags.format {
	case "text", "yaml", "markdown":
	default:
		return fmt.Errorf("invalid format %q (want text, yaml or markdown)", simulateFlags.format)
	}

	mode := cfg.Mode()
	if simulateFlags.mode != "" {
		m, err := trigger.ParseMode(simulateFlags.mode)
		if err != nil {
			return err
		}
		mode = m
	}
	opts := journal.Options{
		Mode:    mode,
		Preview: previewOptions(cmd.Flags().Changed("personalize"), simulateFlags.personalize),
	}

	ctx := cmd.Context()
	store, cleanup, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := simulate(ctx, store, simulateFlags.name, opts); err != nil {
		return err
	}

	snap, err := store.LoadState(ctx, simulateFlags.name, opts)
	if err != nil {
		return fmt.Errorf("failed to replay workflow: %w", err)
	}

	if err := writeReport(cmd.OutOrStdout(), snap, simulateFlags.format); err != nil {
		return err
	}

	if !snap.State.Live {
		return nil
	}
	return runLiveHooks(ctx, cmd.ErrOrStderr(), snap.State)
}

// runLiveHooks runs the on_live hooks for state and prints their output to
// w, keeping the report on stdout parseable.
func runLiveHooks(ctx context.Context, w io.Writer, state workflow.State) error {
	hooksCfg, workDir, err := loadHooks()
	if err != nil {
		return err
	}
	onLive := hooksCfg.OnLive()
	if len(onLive) == 0 {
		return nil
	}

	output, err := hooks.ExecuteAll(ctx, onLive, workDir, hooks.VariablesFor(state))
	if err != nil {
		return fmt.Errorf("on_live hooks: %w", err)
	}
	if output != "" {
		_, err = fmt.Fprintf(w, "on_live hooks:\n%s", output)
	}
	return err
}

// simulate records the wizard steps and test comments described by the
// flags.
func simulate(ctx context.Context, store *journal.Store, name string, opts journal.Options) error {
	snap := journal.NewSnapshot(name, opts)

	var changes []journal.Change
	if simulateFlags.post != "" {
		changes = append(changes, journal.SelectPost(simulateFlags.post))
	}
	changes = append(changes,
		journal.Next(),
		journal.SetTriggerPattern(simulateFlags.pattern),
		journal.Next(),
		journal.SetReply(simulateFlags.reply),
	)
	if simulateFlags.live {
		changes = append(changes, journal.GoLive())
	}

	for _, change := range changes {
		if err := store.Commit(ctx, snap, change); err != nil {
			return fmt.Errorf("failed to record %s: %w", change.Type, err)
		}
	}

	for _, text := range simulateFlags.comments {
		c, ok := snap.Preview.Submit(text)
		if !ok {
			continue
		}
		if err := store.Record(ctx, name, journal.AddComment(c)); err != nil {
			return fmt.Errorf("failed to record comment: %w", err)
		}
	}
	return nil
}

// writeReport prints snap in format. Color is used only when w is a
// terminal.
func writeReport(w io.Writer, snap *journal.Snapshot, format string) error {
	profile := colorprofile.Detect(w, os.Environ())
	color := profile != colorprofile.NoTTY && profile != colorprofile.Ascii

	switch format {
	case "yaml":
		out, err := report.YAML(report.Build(snap.State, snap.Preview))
		if err != nil {
			return err
		}
		if color {
			out = render.Highlight(out, "workflow.yaml", theme.Current().BgBase)
		}
		_, err = fmt.Fprint(w, out)
		return err

	case "markdown":
		out := report.Markdown(snap.State, snap.Preview)
		if color {
			out = render.Markdown(out, 100)
		}
		_, err := fmt.Fprintln(w, out)
		return err

	default:
		state := snap.State
		fmt.Fprintf(w, "Workflow: %s\n", state.Name())
		fmt.Fprintf(w, "Status:   %s (step %d/%d: %s)\n", state.Status(), int(state.Step)+1, len(workflow.Steps()), state.Step.Title())
		fmt.Fprintf(w, "Trigger:  %s\n", state.Trigger.Describe())
		if !state.CanProceed() && !state.Live {
			fmt.Fprintf(w, "Blocked:  %s\n", state.Step.Requirement())
		}
		fmt.Fprintln(w)
		_, err := fmt.Fprintln(w, snap.Preview.Transcript(state))
		return err
	}
}
