package storefront

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxListingNameLength bounds listing names on the wire and in catalogs.
const MaxListingNameLength = 25

var (
	maxListingPrice = C(decimal.RequireFromString("999.99"))
	maxDiscount     = decimal.RequireFromString("90")
)

// Listing is one sellable item in an account's catalog.
//
// Seller is the username of the account that originally listed it; it is
// preserved when the listing is bought or gifted away. A listing starts on
// probation and cannot be bought, gifted, or removed until the next run
// takes it off.
type Listing struct {
	Name     string
	Seller   string
	Price    Credits
	Discount decimal.Decimal
	// onProbation is true until the loader signals that a day has passed.
	onProbation bool
}

// NewListing validates name, price, and discount bounds and returns a listing
// that is on probation. The price is floor-rounded to 2 decimals.
func NewListing(name, seller string, price Credits, discount decimal.Decimal) (Listing, error) {
	if len(name) == 0 || len(name) > MaxListingNameLength {
		return Listing{}, fmt.Errorf("%w: listing name must be 1 to %d characters", ErrListing, MaxListingNameLength)
	}
	if price.IsNegative() || price.GreaterThan(maxListingPrice) {
		return Listing{}, fmt.Errorf("%w: listing price must be between 0 and %s", ErrListing, maxListingPrice)
	}
	if discount.IsNegative() || discount.GreaterThan(maxDiscount) {
		return Listing{}, fmt.Errorf("%w: discount must be between 0%% and %s%%", ErrListing, maxDiscount)
	}
	return Listing{
		Name:        name,
		Seller:      seller,
		Price:       price.Floor2(),
		Discount:    discount,
		onProbation: true,
	}, nil
}

// EffectivePrice is the price a buyer pays right now: the discounted price
// while the market-wide auction is on, the original price otherwise.
// It is computed fresh on every call, never cached.
func (l Listing) EffectivePrice(auction bool) Credits {
	if auction {
		return l.Price.ApplyDiscount(l.Discount)
	}
	return l.Price
}

// OnProbation reports whether the listing is still locked from trade.
func (l Listing) OnProbation() bool { return l.onProbation }

// OffProbation returns a copy cleared for trade.
func (l Listing) OffProbation() Listing {
	l.onProbation = false
	return l
}

// Copy returns a detached copy that starts a fresh probation period.
// Copies are what cross account boundaries on buy and gift, so one catalog
// never aliases another.
func (l Listing) Copy() Listing {
	l.onProbation = true
	return l
}

func (l Listing) String() string {
	return fmt.Sprintf("%s (seller %s, %s, -%s%%)", l.Name, l.Seller, l.Price, l.Discount)
}
