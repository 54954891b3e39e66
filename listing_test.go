package storefront

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewListing(t *testing.T) {
	tests := []struct {
		name     string
		listing  string
		price    float64
		discount string
		wantErr  bool
	}{
		{name: "valid", listing: "Overwatch", price: 29.99, discount: "50"},
		{name: "max price", listing: "Overwatch", price: 999.99, discount: "0"},
		{name: "price too high", listing: "Overwatch", price: 1000.00, discount: "0", wantErr: true},
		{name: "negative price", listing: "Overwatch", price: -1, discount: "0", wantErr: true},
		{name: "max discount", listing: "Overwatch", price: 10, discount: "90"},
		{name: "discount too high", listing: "Overwatch", price: 10, discount: "91", wantErr: true},
		{name: "negative discount", listing: "Overwatch", price: 10, discount: "-1", wantErr: true},
		{name: "empty name", listing: "", price: 10, discount: "0", wantErr: true},
		{name: "name too long", listing: strings.Repeat("x", 26), price: 10, discount: "0", wantErr: true},
		{name: "name at limit", listing: strings.Repeat("x", 25), price: 10, discount: "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := NewListing(tc.listing, "Blizzard", C(tc.price), decimal.RequireFromString(tc.discount))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !errors.Is(err, ErrListing) {
					t.Errorf("error %v should wrap ErrListing", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !l.OnProbation() {
				t.Error("a new listing must start on probation")
			}
		})
	}
}

func TestEffectivePrice(t *testing.T) {
	l, err := NewListing("Overwatch", "Blizzard", C(29.99), decimal.RequireFromString("50"))
	if err != nil {
		t.Fatal(err)
	}
	if got := l.EffectivePrice(false).Wire(); got != "29.99" {
		t.Errorf("without auction the price is %s, want 29.99", got)
	}
	if got := l.EffectivePrice(true).Wire(); got != "14.99" {
		t.Errorf("with auction the price is %s, want 14.99", got)
	}
	// The price is computed fresh: toggling back restores the original.
	if got := l.EffectivePrice(false).Wire(); got != "29.99" {
		t.Errorf("after the auction the price is %s, want 29.99", got)
	}
}

func TestListingCopy(t *testing.T) {
	l, err := NewListing("Overwatch", "Blizzard", C(29.99), decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	cleared := l.OffProbation()
	if cleared.OnProbation() {
		t.Error("OffProbation should clear the flag")
	}
	if !cleared.Copy().OnProbation() {
		t.Error("a copy must start a fresh probation period")
	}
	if cleared.Copy().Seller != "Blizzard" {
		t.Error("a copy must preserve the original seller")
	}
}
