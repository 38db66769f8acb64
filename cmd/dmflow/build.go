package main

import (
	"github.com/mark3labs/dmflow/internal/preview"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/tui/builder"
	"github.com/spf13/cobra"
)

var buildFlags struct {
	name        string
	mode        string
	personalize bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Open the full-screen workflow builder (default command)",
	Long: `Open the full-screen workflow builder.

The wizard on the left walks through three steps: select a post or reel,
configure the comment trigger and write the DM reply. The preview on the
right mirrors the workflow and accepts test comments, showing which of them
would receive the reply under the current trigger.`,
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

// addBuildFlags registers the builder flags on cmd. The root command runs
// the builder too, so it carries the same flags.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&buildFlags.name, "name", "n", "builder", "Workflow name used as the journal subject (the journal is in memory; each session starts empty)")
	cmd.Flags().StringVarP(&buildFlags.mode, "mode", "m", "", "Initial trigger mode: exact, keyword, contains (default: from config)")
	cmd.Flags().BoolVar(&buildFlags.personalize, "personalize", false, "Fill placeholders in preview replies (default: from config)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	mode := cfg.Mode()
	if buildFlags.mode != "" {
		m, err := trigger.ParseMode(buildFlags.mode)
		if err != nil {
			return err
		}
		mode = m
	}

	hooksCfg, workDir, err := loadHooks()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, cleanup, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	// The journal is in memory, so every session starts from an empty workflow
	return builder.Run(ctx, builder.Options{
		Workflow: buildFlags.name,
		Mode:     mode,
		Preview:  previewOptions(cmd.Flags().Changed("personalize"), buildFlags.personalize),
		Recorder: store,
		Hooks:    hooksCfg,
		WorkDir:  workDir,
	})
}

// previewOptions builds simulator options from config, letting an explicit
// --personalize flag override it.
func previewOptions(flagSet, personalize bool) preview.Options {
	opts := preview.Options{Personalize: cfg.Preview.Personalize}
	if flagSet {
		opts.Personalize = personalize
	}
	if cfg.Preview.Author != "" {
		opts.Authors = []string{cfg.Preview.Author}
	}
	return opts
}
