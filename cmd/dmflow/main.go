package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/dmflow/internal/config"
	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/dmflow/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▄ █▀▄▀█ █▀▀ █   █▀█ █ █ █"
	logoText2 = "█▄▀ █ ▀ █ █▀  █▄▄ █▄█ ▀▄▀▄▀"
)

// Version set via ldflags during build
var version = "dev"

// exitCode is set by commands that report a result through the exit status.
var exitCode int

// cfg is loaded before any command runs.
var cfg = config.Default()

var rootFlags struct {
	logLevel string
	logFile  string
	theme    string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
	if exitCode != 0 {
		_ = logger.Close()
		os.Exit(exitCode)
	}
}

var rootCmd = &cobra.Command{
	Use:               "dmflow",
	Short:             "Build comment-triggered DM automations for social posts",
	PersistentPreRunE: loadConfig,
	RunE:              runBuild,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewInstagram()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Tertiary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Tertiary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

dmflow builds "comment to DM" automations: pick a post or reel, define the
comment that triggers the automation, write the direct message to send, and
try it out with simulated comments before going live.

Every step is recorded in an in-memory NATS JetStream journal. The builder
runs as a full-screen TUI; the same workflow is scriptable through the
simulate command and through MCP tools (dmflow serve).`

	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFile, "log-file", "", "Write logs to this file (default: from config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.theme, "theme", "", "Color theme: "+strings.Join(theme.Names(), ", "))

	addBuildFlags(rootCmd)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig applies config files, env vars and flags, in increasing
// precedence, then configures the logger and theme.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}
	if rootFlags.logFile != "" {
		cfg.LogFile = rootFlags.logFile
	}
	if rootFlags.theme != "" {
		cfg.Theme = rootFlags.theme
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	if err := theme.SetCurrent(cfg.Theme); err != nil {
		return err
	}

	logger.Debug("Config loaded: mode=%s theme=%s", cfg.DefaultMode, cfg.Theme)
	return nil
}
