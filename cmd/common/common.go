// Package common holds shared bootstrap helpers for the CLI commands.
package common

import (
	"fmt"

	"github.com/jonesrussell/pagesense/internal/config"
	"github.com/jonesrussell/pagesense/internal/logger"
)

// Exit codes used by the CLI.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// BuildLogger creates the application logger from loaded configuration.
func BuildLogger(cfg *config.Config) (logger.Interface, error) {
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}
