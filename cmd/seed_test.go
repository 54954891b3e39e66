package cmd

import (
	"testing"

	"github.com/etnz/storefront"
)

func TestParseSeedLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		user    string
		cap     storefront.Capability
		balance string
		wantErr bool
	}{
		{name: "plain", line: "Blizzard,SS,1000.00", user: "Blizzard", cap: storefront.Seller, balance: "1000.00"},
		{name: "spaces around fields", line: " Michael , BS , 100.00 ", user: "Michael", cap: storefront.Buyer, balance: "100.00"},
		{name: "admin", line: "TheGreatAdmin,AA,0", user: "TheGreatAdmin", cap: storefront.Admin, balance: "0.00"},
		{name: "missing field", line: "Blizzard,SS", wantErr: true},
		{name: "bad type", line: "Blizzard,ZZ,10", wantErr: true},
		{name: "bad balance", line: "Blizzard,SS,lots", wantErr: true},
		{name: "negative balance", line: "Blizzard,SS,-10", wantErr: true},
		{name: "username too long", line: "ANameWellOverTheLimit,SS,10", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := parseSeedLine(tc.line)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Name != tc.user || a.Cap != tc.cap {
				t.Errorf("parsed %s (%s), want %s (%s)", a.Name, a.Cap, tc.user, tc.cap)
			}
			if got := a.Balance().Wire(); got != tc.balance {
				t.Errorf("balance = %s, want %s", got, tc.balance)
			}
		})
	}
}
