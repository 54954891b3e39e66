package storefront

import (
	"errors"
	"testing"
)

func TestSessionLogin(t *testing.T) {
	reg := NewRegistry()
	a := mustAccount(t, "DavidTheStrongA", Admin, 500.00)
	if err := reg.Add(a); err != nil {
		t.Fatal(err)
	}
	sess := NewSession()

	if err := sess.Login(reg, "Nobody", Buyer, C(0)); !errors.Is(err, ErrUsername) {
		t.Fatalf("login of an unknown user: got %v, want ErrUsername", err)
	}
	if sess.Active() {
		t.Fatal("a failed login should not activate the session")
	}

	if err := sess.Login(reg, "DavidTheStrongA", Admin, C(500.00)); err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Current() != a {
		t.Fatal("the session should hold the logged-in account")
	}

	if err := sess.Login(reg, "DavidTheStrongA", Admin, C(500.00)); !errors.Is(err, ErrUsername) {
		t.Fatalf("double login: got %v, want ErrUsername", err)
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sess.Active() {
		t.Fatal("logout should clear the session")
	}
	if err := sess.Logout(); !errors.Is(err, ErrUsername) {
		t.Fatalf("logout without a session: got %v, want ErrUsername", err)
	}
}

func TestSessionLoginMismatchOnlyWarns(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Add(mustAccount(t, "Blizzard", Seller, 1000.00)); err != nil {
		t.Fatal(err)
	}
	sess := NewSession()

	// A wrong claimed type or balance is only a warning.
	if err := sess.Login(reg, "Blizzard", Buyer, C(42.00)); err != nil {
		t.Fatalf("login with mismatched claims should succeed, got %v", err)
	}
	if !sess.Active() {
		t.Fatal("the session should be active")
	}
}
