package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/storefront"
	"github.com/etnz/storefront/config"
	"github.com/etnz/storefront/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	raw bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display every account, balance, and catalog" }
func (*reportCmd) Usage() string {
	return `sf report [-raw]

  Renders a markdown report of the registry snapshot: accounts, balances,
  catalogs, and effective prices under the current auction state.
`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.raw, "raw", false, "Print raw markdown instead of rendering for the terminal.")
}

func (p *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return fail(err)
	}

	md := renderer.RenderMarket(marketReport(reg))
	if p.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		return fail(err)
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}

// marketReport projects the registry into the renderer's view model.
func marketReport(reg *storefront.Registry) *renderer.MarketReport {
	r := &renderer.MarketReport{Auction: reg.Auction()}
	for a := range reg.Accounts() {
		view := renderer.AccountView{
			Name:      a.Name,
			Type:      a.Cap.Code(),
			Balance:   a.Balance().String(),
			Deposited: a.DepositedToday().String(),
		}
		for l := range a.Catalog() {
			view.Listings = append(view.Listings, renderer.ListingView{
				Name:      l.Name,
				Seller:    l.Seller,
				Price:     l.Price.String(),
				Effective: l.EffectivePrice(reg.Auction()).String(),
				Discount:  l.Discount.String(),
				Probation: l.OnProbation(),
			})
		}
		r.Accounts = append(r.Accounts, view)
	}
	return r
}
