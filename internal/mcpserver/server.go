package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/dmflow/internal/hooks"
	"github.com/mark3labs/dmflow/internal/journal"
	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/mcp-go/server"
)

// Server exposes the workflow builder as MCP tools over streamable HTTP.
// Every call loads the workflow from the journal, applies one change and
// records it, so the HTTP layer itself is stateless.
type Server struct {
	store     *journal.Store
	workflow  string
	opts      journal.Options
	hooks     *hooks.Config
	workDir   string
	mcpServer *server.MCPServer
	stdServer *http.Server
	addr      string
	mu        sync.Mutex
	writeMu   sync.Mutex // Serializes load-apply-record sequences
}

// New creates a server for the named workflow. The server is not started
// until Start is called.
func New(store *journal.Store, workflow string, opts journal.Options) *Server {
	s := &Server{
		store:    store,
		workflow: workflow,
		opts:     opts,
	}
	s.mcpServer = server.NewMCPServer(
		"dmflow",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// SetHooks configures the on_live hooks run by go_live, in workDir.
func (s *Server) SetHooks(cfg *hooks.Config, workDir string) {
	s.hooks = cfg
	s.workDir = workDir
}

// Start listens on addr ("host:port"; an empty addr or port 0 picks a free
// port) and serves MCP requests at /mcp in the background. Returns the bound
// address.
func (s *Server) Start(ctx context.Context, addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return "", fmt.Errorf("server already started")
	}

	if addr == "" {
		addr = "127.0.0.1:0"
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.addr = listener.Addr().String()

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))

	s.stdServer = &http.Server{Handler: mux}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server ready on %s (workflow %s)", s.addr, s.workflow)
	return s.addr, nil
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	if err := s.stdServer.Shutdown(ctx); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.stdServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://%s/mcp", s.addr)
}
