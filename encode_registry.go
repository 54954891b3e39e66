package storefront

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Accounts persist as JSONL: one JSON object per account, catalog inlined.
// The snapshot carries probation flags as written; clearing them is the
// loader's new-day concern, not the codec's.

type listingRecord struct {
	Name      string          `json:"name"`
	Seller    string          `json:"seller"`
	Price     Credits         `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Probation bool            `json:"probation,omitempty"`
}

type accountRecord struct {
	Username string          `json:"username"`
	Type     string          `json:"type"`
	Balance  Credits         `json:"balance"`
	Catalog  []listingRecord `json:"catalog,omitempty"`
}

// EncodeRegistry writes every account as one JSON line, in username order so
// consecutive snapshots of the same registry are byte-identical.
func EncodeRegistry(w io.Writer, reg *Registry) error {
	for a := range reg.Accounts() {
		rec := accountRecord{
			Username: a.Name,
			Type:     a.Cap.Code(),
			Balance:  a.Balance(),
		}
		for l := range a.Catalog() {
			rec.Catalog = append(rec.Catalog, listingRecord{
				Name:      l.Name,
				Seller:    l.Seller,
				Price:     l.Price,
				Discount:  l.Discount,
				Probation: l.OnProbation(),
			})
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("could not encode account %q: %w", a.Name, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

// DecodeRegistry reads a JSONL snapshot back into a registry, exactly as
// written: accumulators zero, probation flags preserved.
func DecodeRegistry(r io.Reader) (*Registry, error) {
	reg := NewRegistry()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var rec accountRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode account line %q: %w", string(lineBytes), err)
		}
		typ, err := ParseCapability(rec.Type)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", rec.Username, err)
		}
		a, err := NewAccount(rec.Username, typ, rec.Balance)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", rec.Username, err)
		}
		for _, lr := range rec.Catalog {
			l, err := NewListing(lr.Name, lr.Seller, lr.Price, lr.Discount)
			if err != nil {
				return nil, fmt.Errorf("account %q listing %q: %w", rec.Username, lr.Name, err)
			}
			if !lr.Probation {
				l = l.OffProbation()
			}
			a.addListing(l)
		}
		if err := reg.Add(a); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reg, nil
}
