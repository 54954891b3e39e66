package storefront

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Capability tags what an account may do. Authorization checks are table
// lookups on this tag, there is no account subtyping.
type Capability int

const (
	// Buyer accounts can only buy.
	Buyer Capability = iota
	// Seller accounts can only sell, and cannot receive gifts.
	Seller
	// Full accounts buy and sell.
	Full
	// Admin accounts buy, sell, and run administrative operations.
	Admin
)

// capability traits, indexed by the tag.
var capTraits = [...]struct {
	code      string
	buy, sell bool
}{
	Buyer:  {code: "BS", buy: true},
	Seller: {code: "SS", sell: true},
	Full:   {code: "FS", buy: true, sell: true},
	Admin:  {code: "AA", buy: true, sell: true},
}

// ParseCapability parses a 2-letter wire code into a capability tag.
func ParseCapability(code string) (Capability, error) {
	for i, t := range capTraits {
		if t.code == code {
			return Capability(i), nil
		}
	}
	return 0, fmt.Errorf("unknown account type %q", code)
}

// Code returns the 2-letter wire code for the capability.
func (c Capability) Code() string { return capTraits[c].code }

func (c Capability) String() string { return c.Code() }

// CanBuy reports whether the capability permits buying listings.
func (c Capability) CanBuy() bool { return capTraits[c].buy }

// CanSell reports whether the capability permits publishing listings.
func (c Capability) CanSell() bool { return capTraits[c].sell }

// IsAdmin reports whether the capability permits administrative operations.
func (c Capability) IsAdmin() bool { return c == Admin }

// MaxUsernameLength bounds usernames on the wire and in the registry.
const MaxUsernameLength = 15

// Account is one marketplace participant: a capability tag, a balance, the
// credits deposited during the current run, and the catalog of owned listings.
type Account struct {
	Name string
	Cap  Capability

	balance        Credits
	depositedToday Credits
	catalog        map[string]Listing
}

// NewAccount validates the username and starting balance and returns a fresh
// account with an empty catalog.
func NewAccount(name string, cap Capability, balance Credits) (*Account, error) {
	if len(name) == 0 || len(name) > MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be 1 to %d characters", ErrUsername, MaxUsernameLength)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: cannot open an account with a negative balance", ErrBalance)
	}
	a := &Account{Name: name, Cap: cap, catalog: make(map[string]Listing)}
	a.setBalance(balance)
	return a, nil
}

// Balance returns the current balance, always floor-rounded to 2 decimals.
func (a *Account) Balance() Credits { return a.balance }

// DepositedToday returns the credits deposited during the current run.
func (a *Account) DepositedToday() Credits { return a.depositedToday }

// setBalance floor-rounds the amount and clamps it at MaxCredits.
// It reports whether clamping occurred so callers can warn.
func (a *Account) setBalance(amount Credits) (clamped bool) {
	if amount.GreaterThan(MaxCredits) {
		a.balance = MaxCredits
		return true
	}
	a.balance = amount.Floor2()
	return false
}

// Deposit adds credits to the balance, honoring the daily deposit limit.
// The deposit is all-or-nothing: exceeding the limit leaves both the
// accumulator and the balance untouched. The clamped result reports that the
// balance hit MaxCredits, which is a warning, not a failure.
func (a *Account) Deposit(amount Credits) (clamped bool, err error) {
	if a.depositedToday.Add(amount).GreaterThan(DailyDepositLimit) {
		return false, fmt.Errorf("%w: cannot deposit more than %s credits in a day", ErrDailyLimit, DailyDepositLimit)
	}
	a.depositedToday = a.depositedToday.Add(amount)
	return a.setBalance(a.balance.Add(amount)), nil
}

// credit adds funds with no daily-limit bookkeeping (sales, refunds).
func (a *Account) credit(amount Credits) (clamped bool) {
	return a.setBalance(a.balance.Add(amount))
}

// debit removes funds; it fails rather than drive the balance negative.
func (a *Account) debit(amount Credits) error {
	next := a.balance.Sub(amount)
	if next.IsNegative() {
		return fmt.Errorf("%w: %s does not have sufficient funds", ErrBalance, a.Name)
	}
	a.setBalance(next)
	return nil
}

// Owns reports whether the account's catalog holds a listing with that name.
func (a *Account) Owns(name string) bool {
	_, ok := a.catalog[name]
	return ok
}

// Listing returns the named listing from the catalog.
func (a *Account) Listing(name string) (Listing, bool) {
	l, ok := a.catalog[name]
	return l, ok
}

func (a *Account) addListing(l Listing) { a.catalog[l.Name] = l }

func (a *Account) removeListing(name string) { delete(a.catalog, name) }

// Catalog iterates the account's listings in name order.
func (a *Account) Catalog() iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		names := slices.Collect(maps.Keys(a.catalog))
		slices.Sort(names)
		for _, name := range names {
			if !yield(a.catalog[name]) {
				return
			}
		}
	}
}

// NewDay resets the daily deposit accumulator and takes every listing in the
// catalog off probation. The loader calls this when restoring a prior run.
func (a *Account) NewDay() {
	a.depositedToday = Credits{}
	for name, l := range a.catalog {
		a.catalog[name] = l.OffProbation()
	}
}

func (a *Account) String() string {
	return fmt.Sprintf("%s (%s) balance %s", a.Name, a.Cap, a.balance)
}
