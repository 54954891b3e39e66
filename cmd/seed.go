package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/etnz/storefront"
	"github.com/etnz/storefront/config"
	"github.com/google/subcommands"
)

type seedCmd struct {
	input string
	fresh bool
}

func (*seedCmd) Name() string { return "seed" }
func (*seedCmd) Synopsis() string {
	return "seed the registry with accounts from a username,type,balance file"
}
func (*seedCmd) Usage() string {
	return `sf seed [-fresh] -input <file>

  Adds accounts to the registry snapshot from lines of the form
  username,type,balance where type is one of AA, FS, BS, SS.
  Bad lines are reported and skipped.
`
}

func (p *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.input, "input", "", "File of username,type,balance lines.")
	f.BoolVar(&p.fresh, "fresh", false, "Start from an empty registry instead of the saved snapshot.")
}

func (p *seedCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.input == "" {
		return fail(fmt.Errorf("seed requires -input"))
	}
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	reg := storefront.NewRegistry()
	if !p.fresh {
		if reg, err = loadRegistry(cfg); err != nil {
			return fail(err)
		}
	}

	f, err := os.Open(p.input)
	if err != nil {
		return fail(fmt.Errorf("could not open seed file %q: %w", p.input, err))
	}
	defer f.Close()

	added := 0
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		a, err := parseSeedLine(line)
		if err != nil {
			log.Printf("line %d: %v", lineNo, err)
			continue
		}
		if err := reg.Add(a); err != nil {
			log.Printf("line %d: %v", lineNo, err)
			continue
		}
		added++
	}
	if err := scanner.Err(); err != nil {
		return fail(err)
	}

	if err := storefront.SaveRegistry(cfg.RegistryFile, reg); err != nil {
		return fail(err)
	}
	fmt.Printf("seeded %d accounts into %s\n", added, cfg.RegistryFile)
	return subcommands.ExitSuccess
}

// parseSeedLine builds an account from one username,type,balance line.
func parseSeedLine(line string) (*storefront.Account, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected username,type,balance, got %q", line)
	}
	typ, err := storefront.ParseCapability(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	balance, err := storefront.ParseCredits(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, err
	}
	return storefront.NewAccount(strings.TrimSpace(parts[0]), typ, balance)
}
