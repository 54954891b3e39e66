// Package renderer turns registry state into markdown reports.
package renderer

import (
	"fmt"
	"strings"
	"text/template"
)

// MarketReport is the data behind the accounts report.
type MarketReport struct {
	Auction  bool
	Accounts []AccountView
}

// AccountView is one account row with its catalog.
type AccountView struct {
	Name      string
	Type      string
	Balance   string
	Deposited string
	Listings  []ListingView
}

// ListingView is one catalog row. Effective carries the price a buyer pays
// right now, discount applied when the auction is on.
type ListingView struct {
	Name      string
	Seller    string
	Price     string
	Effective string
	Discount  string
	Probation bool
}

const marketTemplate = `# Marketplace accounts
{{if .Auction}}
**Auction sale is on**: discounted prices apply.
{{end}}
{{range .Accounts}}
## {{.Name}} ({{.Type}})

Balance: {{.Balance}} (deposited today: {{.Deposited}})
{{if .Listings}}
| Listing | Seller | Price | Effective | Discount | |
|---|---|---|---|---|---|
{{range .Listings}}| {{.Name}} | {{.Seller}} | {{.Price}} | {{.Effective}} | {{.Discount}}% | {{if .Probation}}on probation{{end}} |
{{end}}{{else}}
No listings.
{{end}}{{end}}`

// RenderMarket renders the report to a markdown string.
func RenderMarket(r *MarketReport) string {
	tmpl, err := template.New("market").Parse(marketTemplate)
	if err != nil {
		return fmt.Sprintf("error parsing market template: %v", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, r); err != nil {
		return fmt.Sprintf("error executing market template: %v", err)
	}
	return b.String()
}
