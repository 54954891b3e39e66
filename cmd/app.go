// Package cmd implements the CLI application to run the marketplace batch.
package cmd

import (
	"fmt"
	"os"

	"github.com/etnz/storefront"
	"github.com/etnz/storefront/config"
	"github.com/etnz/storefront/recorder"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&replayCmd{}, "batch")
	c.Register(&seedCmd{}, "accounts")
	c.Register(&reportCmd{}, "accounts")
}

// loadRegistry restores the prior run's accounts per the configuration.
func loadRegistry(cfg *config.Config) (*storefront.Registry, error) {
	reg, err := storefront.LoadRegistry(cfg.RegistryFile)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// openRecorder builds the audit trail from the configuration. SQLite wins
// when configured, then the append-only log, then no recording at all.
func openRecorder(cfg *config.Config) (recorder.Recorder, error) {
	if cfg.AuditDB != "" {
		return recorder.NewSQLite(cfg.AuditDB)
	}
	if cfg.ErrorLog != "" {
		return recorder.NewLog(cfg.ErrorLog)
	}
	return recorder.NewNoop(), nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
