package storefront

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// CommandType is the 2-digit operation code prefixing every record.
type CommandType string

// Operation codes in record order.
const (
	CmdLogin     CommandType = "00"
	CmdCreate    CommandType = "01"
	CmdDelete    CommandType = "02"
	CmdSell      CommandType = "03"
	CmdBuy       CommandType = "04"
	CmdRefund    CommandType = "05"
	CmdAddCredit CommandType = "06"
	CmdAuction   CommandType = "07"
	CmdRemove    CommandType = "08"
	CmdGift      CommandType = "09"
	CmdLogout    CommandType = "10"
)

// Transaction is one typed, validated operation bound to the registry and
// session it will execute against.
//
// Apply resolves the acting account, authorizes it against the capability
// table, validates the business rules, then mutates state. A failed Apply
// leaves the registry untouched.
type Transaction interface {
	What() CommandType
	Apply(reg *Registry, sess *Session) error
	fmt.Stringer
}

// actor returns the logged-in account. The replay loop skips sessionless
// records before Apply runs, so this guard only trips on direct calls.
func actor(sess *Session) (*Account, error) {
	if !sess.Active() {
		return nil, fmt.Errorf("%w: no user is logged in", ErrAccess)
	}
	return sess.Current(), nil
}

// --- Login ---

// Login binds the session to an existing account. The claimed type and
// balance are checked against the account but mismatches only warn.
type Login struct {
	Username string
	Type     Capability
	Balance  Credits
}

// NewLogin creates a Login transaction.
func NewLogin(username string, typ Capability, balance Credits) Login {
	return Login{Username: username, Type: typ, Balance: balance}
}

func (t Login) What() CommandType { return CmdLogin }

func (t Login) Apply(reg *Registry, sess *Session) error {
	return sess.Login(reg, t.Username, t.Type, t.Balance)
}

func (t Login) String() string { return fmt.Sprintf("%s logged in", t.Username) }

// --- Logout ---

// Logout clears the session binding.
type Logout struct{}

// NewLogout creates a Logout transaction.
func NewLogout() Logout { return Logout{} }

func (t Logout) What() CommandType { return CmdLogout }

func (t Logout) Apply(_ *Registry, sess *Session) error {
	return sess.Logout()
}

func (t Logout) String() string { return "logged out" }

// --- Create ---

// Create opens a new account. Admin only.
type Create struct {
	Username string
	Type     Capability
	Balance  Credits
}

// NewCreate creates a Create transaction.
func NewCreate(username string, typ Capability, balance Credits) Create {
	return Create{Username: username, Type: typ, Balance: balance}
}

func (t Create) What() CommandType { return CmdCreate }

func (t Create) Apply(reg *Registry, sess *Session) error {
	issuer, err := actor(sess)
	if err != nil {
		return err
	}
	if !issuer.Cap.IsAdmin() {
		return fmt.Errorf("%w: only an admin can create accounts", ErrAccess)
	}
	a, err := NewAccount(t.Username, t.Type, t.Balance)
	if err != nil {
		return err
	}
	return reg.Add(a)
}

func (t Create) String() string {
	return fmt.Sprintf("account %s (%s) created with balance %s", t.Username, t.Type, t.Balance)
}

// --- Delete ---

// Delete removes an account. Admin only, and never the issuing admin itself.
type Delete struct {
	Username string
}

// NewDelete creates a Delete transaction.
func NewDelete(username string) Delete { return Delete{Username: username} }

func (t Delete) What() CommandType { return CmdDelete }

func (t Delete) Apply(reg *Registry, sess *Session) error {
	issuer, err := actor(sess)
	if err != nil {
		return err
	}
	if !issuer.Cap.IsAdmin() {
		return fmt.Errorf("%w: only an admin can delete accounts", ErrAccess)
	}
	if t.Username == issuer.Name {
		return fmt.Errorf("%w: cannot delete your own account", ErrUsername)
	}
	return reg.Remove(t.Username)
}

func (t Delete) String() string { return fmt.Sprintf("account %s deleted", t.Username) }

// --- Sell ---

// Sell publishes a new listing in the acting account's catalog.
type Sell struct {
	ListingName string
	Seller      string
	Discount    decimal.Decimal
	Price       Credits
}

// NewSell creates a Sell transaction.
func NewSell(listingName, seller string, discount decimal.Decimal, price Credits) Sell {
	return Sell{ListingName: listingName, Seller: seller, Discount: discount, Price: price}
}

func (t Sell) What() CommandType { return CmdSell }

func (t Sell) Apply(reg *Registry, sess *Session) error {
	seller, err := actor(sess)
	if err != nil {
		return err
	}
	if t.Seller != seller.Name {
		return fmt.Errorf("%w: cannot list on behalf of another user", ErrUsername)
	}
	if !seller.Cap.CanSell() {
		return fmt.Errorf("%w: a %s account cannot sell", ErrAccess, seller.Cap)
	}
	if seller.Owns(t.ListingName) {
		return fmt.Errorf("%w: %s already has %q in their catalog", ErrListing, seller.Name, t.ListingName)
	}
	l, err := NewListing(t.ListingName, seller.Name, t.Price, t.Discount)
	if err != nil {
		return err
	}
	seller.addListing(l)
	return nil
}

func (t Sell) String() string {
	return fmt.Sprintf("%s listed %q at %s (discount %s%%)", t.Seller, t.ListingName, t.Price, t.Discount)
}

// --- Buy ---

// Buy places a copy of a listing into the buyer's catalog and moves the
// effective price from the buyer's balance to the seller's.
type Buy struct {
	ListingName string
	Seller      string
	Buyer       string
}

// NewBuy creates a Buy transaction.
func NewBuy(listingName, seller, buyer string) Buy {
	return Buy{ListingName: listingName, Seller: seller, Buyer: buyer}
}

func (t Buy) What() CommandType { return CmdBuy }

func (t Buy) Apply(reg *Registry, sess *Session) error {
	buyer, err := actor(sess)
	if err != nil {
		return err
	}
	if t.Buyer != buyer.Name {
		return fmt.Errorf("%w: cannot buy on behalf of another user", ErrUsername)
	}
	if !buyer.Cap.CanBuy() {
		return fmt.Errorf("%w: a %s account cannot buy", ErrAccess, buyer.Cap)
	}
	if buyer.Owns(t.ListingName) {
		return fmt.Errorf("%w: %s already owns %q", ErrListing, buyer.Name, t.ListingName)
	}
	seller := reg.Account(t.Seller)
	if seller == nil {
		return fmt.Errorf("%w: user %q does not exist", ErrUsername, t.Seller)
	}
	l, ok := seller.Listing(t.ListingName)
	if !ok || l.Seller != seller.Name {
		// Owning a copy bought or received from elsewhere is not selling it.
		return fmt.Errorf("%w: %s does not have %q for sale", ErrListing, t.Seller, t.ListingName)
	}
	price := l.EffectivePrice(reg.Auction())
	if buyer.Balance().LessThan(price) {
		return fmt.Errorf("%w: %s does not have sufficient funds to purchase %q", ErrBalance, buyer.Name, t.ListingName)
	}
	if l.OnProbation() {
		return fmt.Errorf("%w: %q is not available until the following day", ErrListing, t.ListingName)
	}
	if err := buyer.debit(price); err != nil {
		return err
	}
	buyer.addListing(l.Copy())
	if seller.credit(price) {
		log.Printf("%s: balance clamped at the maximum of %s", seller.Name, MaxCredits)
	}
	return nil
}

func (t Buy) String() string {
	return fmt.Sprintf("%s bought %q from %s", t.Buyer, t.ListingName, t.Seller)
}

// --- Refund ---

// Refund moves credits from a seller back to a buyer. Admin only.
type Refund struct {
	Buyer  string
	Seller string
	Amount Credits
}

// NewRefund creates a Refund transaction.
func NewRefund(buyer, seller string, amount Credits) Refund {
	return Refund{Buyer: buyer, Seller: seller, Amount: amount}
}

func (t Refund) What() CommandType { return CmdRefund }

func (t Refund) Apply(reg *Registry, sess *Session) error {
	issuer, err := actor(sess)
	if err != nil {
		return err
	}
	if !issuer.Cap.IsAdmin() {
		return fmt.Errorf("%w: only an admin can issue refunds", ErrAccess)
	}
	buyer := reg.Account(t.Buyer)
	if buyer == nil {
		return fmt.Errorf("%w: user %q does not exist", ErrUsername, t.Buyer)
	}
	seller := reg.Account(t.Seller)
	if seller == nil {
		return fmt.Errorf("%w: user %q does not exist", ErrUsername, t.Seller)
	}
	if buyer == seller {
		return fmt.Errorf("%w: cannot refund an account from itself", ErrAccess)
	}
	if !buyer.Cap.CanBuy() {
		return fmt.Errorf("%w: a %s account cannot receive refunds", ErrAccess, buyer.Cap)
	}
	if !seller.Cap.CanSell() {
		return fmt.Errorf("%w: a %s account cannot issue refunds", ErrAccess, seller.Cap)
	}
	if err := seller.debit(t.Amount); err != nil {
		return err
	}
	if buyer.credit(t.Amount) {
		log.Printf("%s: balance clamped at the maximum of %s", buyer.Name, MaxCredits)
	}
	return nil
}

func (t Refund) String() string {
	return fmt.Sprintf("refunded %s from %s to %s", t.Amount, t.Seller, t.Buyer)
}

// --- AddCredit ---

// AddCredit deposits credits: an admin may target any account, everyone else
// only themselves. The deposit counts against the daily limit.
type AddCredit struct {
	Username string
	Amount   Credits
}

// NewAddCredit creates an AddCredit transaction.
func NewAddCredit(username string, amount Credits) AddCredit {
	return AddCredit{Username: username, Amount: amount}
}

func (t AddCredit) What() CommandType { return CmdAddCredit }

func (t AddCredit) Apply(reg *Registry, sess *Session) error {
	issuer, err := actor(sess)
	if err != nil {
		return err
	}
	target := issuer
	if issuer.Cap.IsAdmin() {
		if target = reg.Account(t.Username); target == nil {
			return fmt.Errorf("%w: user %q does not exist", ErrUsername, t.Username)
		}
	} else if t.Username != issuer.Name {
		return fmt.Errorf("%w: only an admin can add credit to another account", ErrAccess)
	}
	clamped, err := target.Deposit(t.Amount)
	if err != nil {
		return err
	}
	if clamped {
		log.Printf("%s: balance clamped at the maximum of %s", target.Name, MaxCredits)
	}
	return nil
}

func (t AddCredit) String() string {
	return fmt.Sprintf("%s deposited %s", t.Username, t.Amount)
}

// --- AuctionSale ---

// AuctionSale toggles the market-wide auction. Admin only.
type AuctionSale struct {
	Username string
}

// NewAuctionSale creates an AuctionSale transaction.
func NewAuctionSale(username string) AuctionSale { return AuctionSale{Username: username} }

func (t AuctionSale) What() CommandType { return CmdAuction }

func (t AuctionSale) Apply(reg *Registry, sess *Session) error {
	issuer, err := actor(sess)
	if err != nil {
		return err
	}
	if !issuer.Cap.IsAdmin() {
		return fmt.Errorf("%w: only an admin can toggle an auction sale", ErrAccess)
	}
	if reg.ToggleAuction() {
		log.Print("auction sale has started")
	} else {
		log.Print("auction sale has ended")
	}
	return nil
}

func (t AuctionSale) String() string { return "auction sale toggled" }

// --- RemoveListing ---

// RemoveListing drops a listing from a catalog: an admin may target any
// account through the owner field, everyone else removes from their own.
type RemoveListing struct {
	ListingName string
	Owner       string
}

// NewRemoveListing creates a RemoveListing transaction.
func NewRemoveListing(listingName, owner string) RemoveListing {
	return RemoveListing{ListingName: listingName, Owner: owner}
}

func (t RemoveListing) What() CommandType { return CmdRemove }

func (t RemoveListing) Apply(reg *Registry, sess *Session) error {
	issuer, err := actor(sess)
	if err != nil {
		return err
	}
	owner := issuer
	if issuer.Cap.IsAdmin() && t.Owner != "" && t.Owner != issuer.Name {
		if owner = reg.Account(t.Owner); owner == nil {
			return fmt.Errorf("%w: user %q does not exist", ErrUsername, t.Owner)
		}
	}
	l, ok := owner.Listing(t.ListingName)
	if !ok {
		return fmt.Errorf("%w: %q is not in %s's catalog", ErrListing, t.ListingName, owner.Name)
	}
	if l.OnProbation() {
		return fmt.Errorf("%w: %q cannot be removed until it is off probation", ErrListing, t.ListingName)
	}
	owner.removeListing(t.ListingName)
	return nil
}

func (t RemoveListing) String() string {
	return fmt.Sprintf("%s removed %q", t.Owner, t.ListingName)
}

// --- Gift ---

// Gift transfers a listing from a sender to a receiver. An admin may gift on
// behalf of any account, and when the sender owns no such listing the admin
// path copies an off-probation one from anywhere in the registry first.
type Gift struct {
	ListingName string
	Owner       string
	Receiver    string
}

// NewGift creates a Gift transaction.
func NewGift(listingName, owner, receiver string) Gift {
	return Gift{ListingName: listingName, Owner: owner, Receiver: receiver}
}

func (t Gift) What() CommandType { return CmdGift }

func (t Gift) Apply(reg *Registry, sess *Session) error {
	issuer, err := actor(sess)
	if err != nil {
		return err
	}
	sender := issuer
	if issuer.Cap.IsAdmin() {
		if sender = reg.Account(t.Owner); sender == nil {
			return fmt.Errorf("%w: user %q does not exist", ErrUsername, t.Owner)
		}
		if !sender.Owns(t.ListingName) {
			// Copy an off-probation listing from anywhere in the registry
			// into the sender's catalog, cleared for immediate re-gifting.
			// The interim copy stays there even if the transfer below
			// fails; only the transfer itself is all-or-nothing.
			l, ok := reg.FindOffProbation(t.ListingName, sender.Name)
			if !ok {
				return fmt.Errorf("%w: %q is unavailable for gifting", ErrListing, t.ListingName)
			}
			sender.addListing(l.Copy().OffProbation())
		}
	}
	return giftTransfer(reg, sender, t.Receiver, t.ListingName)
}

// giftTransfer moves the sender's listing to the receiver. The listing stays
// in the sender's catalog only when the sender is its original seller.
func giftTransfer(reg *Registry, sender *Account, receiverName, listingName string) error {
	l, ok := sender.Listing(listingName)
	if !ok {
		return fmt.Errorf("%w: %q is not in %s's catalog", ErrListing, listingName, sender.Name)
	}
	receiver := reg.Account(receiverName)
	if receiver == nil {
		return fmt.Errorf("%w: user %q does not exist", ErrUsername, receiverName)
	}
	if receiver.Cap == Seller {
		return fmt.Errorf("%w: cannot gift to a sell-only account", ErrAccess)
	}
	if receiver.Owns(listingName) {
		return fmt.Errorf("%w: %s already owns %q", ErrListing, receiver.Name, listingName)
	}
	if l.OnProbation() {
		return fmt.Errorf("%w: %q cannot be gifted until it is off probation", ErrListing, listingName)
	}
	if sender.Name != l.Seller {
		sender.removeListing(listingName)
	}
	receiver.addListing(l.Copy())
	return nil
}

func (t Gift) String() string {
	return fmt.Sprintf("%s gifted %q to %s", t.Owner, t.ListingName, t.Receiver)
}
