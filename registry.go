package storefront

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Registry owns every account for the lifetime of one run, plus the
// market-wide auction flag. The flag lives here, not in a process global, so
// every price query reaches it through the registry it already holds.
type Registry struct {
	accounts map[string]*Account
	auction  bool
}

// NewRegistry creates an empty registry with the auction off.
func NewRegistry() *Registry {
	return &Registry{accounts: make(map[string]*Account)}
}

// Account returns the account with this username, or nil if unknown.
func (r *Registry) Account(username string) *Account {
	return r.accounts[username]
}

// Has reports whether the username is taken.
func (r *Registry) Has(username string) bool {
	_, ok := r.accounts[username]
	return ok
}

// Add registers a new account; the username must be free.
func (r *Registry) Add(a *Account) error {
	if r.Has(a.Name) {
		return fmt.Errorf("%w: username %q already taken", ErrUsername, a.Name)
	}
	r.accounts[a.Name] = a
	return nil
}

// Remove deletes the account with this username.
func (r *Registry) Remove(username string) error {
	if !r.Has(username) {
		return fmt.Errorf("%w: user %q does not exist", ErrUsername, username)
	}
	delete(r.accounts, username)
	return nil
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int { return len(r.accounts) }

// Accounts iterates accounts in username order, so every walk over the
// registry is deterministic.
func (r *Registry) Accounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		names := slices.Collect(maps.Keys(r.accounts))
		slices.Sort(names)
		for _, name := range names {
			if !yield(r.accounts[name]) {
				return
			}
		}
	}
}

// Auction reports whether the market-wide auction is on.
func (r *Registry) Auction() bool { return r.auction }

// ToggleAuction flips the auction flag and returns the new state. It changes
// the effective price of every listing at once.
func (r *Registry) ToggleAuction() bool {
	r.auction = !r.auction
	return r.auction
}

// FindOffProbation searches the whole registry for an off-probation listing
// with this name, skipping the excluded username. Accounts are visited in
// username order, so when several hold a match the lowest username wins.
func (r *Registry) FindOffProbation(listingName, exclude string) (Listing, bool) {
	for a := range r.Accounts() {
		if a.Name == exclude {
			continue
		}
		if l, ok := a.Listing(listingName); ok && !l.OnProbation() {
			return l, true
		}
	}
	return Listing{}, false
}

// NewDay propagates the loader's new-day signal to every account: deposit
// accumulators reset and all listings come off probation.
func (r *Registry) NewDay() {
	for _, a := range r.accounts {
		a.NewDay()
	}
}
