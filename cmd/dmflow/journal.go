package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/dmflow/internal/journal"
	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/dmflow/internal/nats"
)

// openJournal starts an embedded NATS server in a throwaway directory and
// returns a journal store on top of it. cleanup shuts the server down and
// removes the directory.
func openJournal(ctx context.Context) (store *journal.Store, cleanup func(), err error) {
	dataDir, err := os.MkdirTemp("", "dmflow-*")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	bus, err := nats.Open(ctx, dataDir)
	if err != nil {
		_ = os.RemoveAll(dataDir)
		return nil, nil, err
	}

	cleanup = func() {
		if err := bus.Close(); err != nil {
			logger.Warn("Error shutting down NATS: %v", err)
		}
		_ = os.RemoveAll(dataDir)
	}
	return journal.NewStore(bus.JS, bus.Stream), cleanup, nil
}
