package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/dmflow/internal/hooks"
)

// loadHooks reads the hooks file from the working directory. A missing file
// yields a nil config.
func loadHooks() (*hooks.Config, string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get working directory: %w", err)
	}
	hooksCfg, err := hooks.LoadConfig(workDir)
	if err != nil {
		return nil, "", err
	}
	return hooksCfg, workDir, nil
}
