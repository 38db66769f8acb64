package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/dmflow/internal/journal"
	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/dmflow/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	addr string
	name string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the builder as MCP tools over streamable HTTP",
	Long: `Serve the builder as MCP tools over streamable HTTP.

Agents drive the same wizard through tools such as select_post,
configure_trigger, set_reply, next_step, go_live and submit_test_comment.
Workflow state lives in an in-memory journal and is lost on exit.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.addr, "addr", "a", "", "Listen address (default: from config)")
	serveCmd.Flags().StringVarP(&serveFlags.name, "name", "n", "mcp", "Workflow name used as the journal key")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Serve.Addr
	if serveFlags.addr != "" {
		addr = serveFlags.addr
	}

	hooksCfg, workDir, err := loadHooks()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcpserver.New(store, serveFlags.name, journal.Options{
		Mode:    cfg.Mode(),
		Preview: previewOptions(false, false),
	})
	srv.SetHooks(hooksCfg, workDir)
	if _, err := srv.Start(ctx, addr); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", srv.URL())
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop.")

	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
	}
	return nil
}
