package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/storefront"
	"github.com/etnz/storefront/config"
	"github.com/google/subcommands"
)

type replayCmd struct {
	daily    string
	registry string
}

func (*replayCmd) Name() string { return "replay" }
func (*replayCmd) Synopsis() string {
	return "replay the daily transaction file against the account registry"
}
func (*replayCmd) Usage() string {
	return `sf replay [-daily <file>] [-registry <file>]

  Loads the prior run's registry snapshot, replays the daily transaction
  records one at a time, and snapshots the registry for the next run.
  Malformed records and business-rule violations are logged and skipped;
  the batch always runs to the end.
`
}

func (p *replayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.daily, "daily", "", "Daily transaction file. Overrides the configured path.")
	f.StringVar(&p.registry, "registry", "", "Registry snapshot file. Overrides the configured path.")
}

func (p *replayCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	if p.daily != "" {
		cfg.DailyFile = p.daily
	}
	if p.registry != "" {
		cfg.RegistryFile = p.registry
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return fail(err)
	}

	records, err := os.Open(cfg.DailyFile)
	if err != nil {
		return fail(fmt.Errorf("could not open daily file %q: %w", cfg.DailyFile, err))
	}
	defer records.Close()

	rec, err := openRecorder(cfg)
	if err != nil {
		return fail(err)
	}
	defer rec.Close()

	sess := storefront.NewSession()
	stats, err := storefront.Replay(reg, sess, records, rec, rec)
	if err != nil {
		return fail(err)
	}

	if err := storefront.SaveRegistry(cfg.RegistryFile, reg); err != nil {
		return fail(err)
	}
	fmt.Printf("replayed %s: %d applied, %d failed, %d skipped\n",
		cfg.DailyFile, stats.Applied, stats.Failed, stats.Skipped)
	return subcommands.ExitSuccess
}
