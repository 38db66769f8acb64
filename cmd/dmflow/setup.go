package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/dmflow/internal/config"
	"github.com/mark3labs/dmflow/internal/hooks"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	hooks   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create dmflow configuration file",
	Long: `Create a dmflow configuration file with sensible defaults.

By default, creates a global config at ~/.config/dmflow/dmflow.yml.
Use --project to create a project-local config in the current directory.
Use --hooks to also write an example .dmflow.hooks.yml whose on_live
commands run when a workflow goes live.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().BoolVar(&setupFlags.hooks, "hooks", false, "Also write an example hooks file in the current directory")
}

func runSetup(cmd *cobra.Command, args []string) error {
	// Determine target path
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	// Check if config already exists
	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}
	if setupFlags.hooks && !setupFlags.force && fileExists(hooks.ConfigFileName) {
		return fmt.Errorf("hooks file already exists at %s\n\nUse --force to overwrite", hooks.ConfigFileName)
	}

	defaults := config.Default()

	var err error
	if setupFlags.project {
		err = config.WriteProject(defaults)
	} else {
		err = config.WriteGlobal(defaults)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n", targetPath)

	if setupFlags.hooks {
		if err := hooks.WriteConfig(".", hooks.Example()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Hooks written to:  %s\n", hooks.ConfigFileName)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'dmflow' to open the builder.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
