package main

import (
	"fmt"

	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/spf13/cobra"
)

var matchFlags struct {
	mode    string
	pattern string
}

var matchCmd = &cobra.Command{
	Use:   "match COMMENT...",
	Short: "Check comments against a trigger",
	Long: `Check each comment against a trigger and print "match" or "no match".

Exits with status 0 when every comment matches and 1 otherwise, so the
command can be used in scripts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchFlags.mode, "mode", "m", "", "Trigger mode: exact, keyword, contains (default: from config)")
	matchCmd.Flags().StringVarP(&matchFlags.pattern, "pattern", "p", "", "Trigger pattern (required)")
	_ = matchCmd.MarkFlagRequired("pattern")
}

func runMatch(cmd *cobra.Command, args []string) error {
	mode := cfg.Mode()
	if matchFlags.mode != "" {
		m, err := trigger.ParseMode(matchFlags.mode)
		if err != nil {
			return err
		}
		mode = m
	}

	t := trigger.Trigger{Mode: mode, Pattern: matchFlags.pattern}
	if err := t.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, comment := range args {
		if t.Match(comment) {
			fmt.Fprintf(out, "match     %q\n", comment)
			continue
		}
		fmt.Fprintf(out, "no match  %q\n", comment)
		exitCode = 1
	}
	return nil
}
