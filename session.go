package storefront

import (
	"fmt"
	"log"
)

// Session tracks the single account logged in while records replay.
// Exactly one session exists per run.
type Session struct {
	current *Account
}

// NewSession returns a session with nobody logged in.
func NewSession() *Session { return &Session{} }

// Current returns the logged-in account, or nil.
func (s *Session) Current() *Account { return s.current }

// Active reports whether an account is logged in.
func (s *Session) Active() bool { return s.current != nil }

// Login binds the session to the named account. A mismatch between the
// claimed type or balance and the account's actual values is only a warning:
// the login still succeeds.
func (s *Session) Login(reg *Registry, username string, claimedType Capability, claimedBalance Credits) error {
	if s.Active() {
		return fmt.Errorf("%w: a user is already logged in", ErrUsername)
	}
	a := reg.Account(username)
	if a == nil {
		return fmt.Errorf("%w: user %q does not exist", ErrUsername, username)
	}
	s.current = a
	if a.Cap != claimedType {
		log.Printf("%s: login declared type %s but account is %s, proceeding", username, claimedType, a.Cap)
	}
	if a.Balance().Wire() != claimedBalance.Wire() {
		log.Printf("%s: login declared balance %s but account holds %s, proceeding", username, claimedBalance, a.Balance())
	}
	return nil
}

// Logout clears the binding.
func (s *Session) Logout() error {
	if !s.Active() {
		return fmt.Errorf("%w: no user is logged in", ErrUsername)
	}
	s.current = nil
	return nil
}
