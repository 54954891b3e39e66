package storefront

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Credits is the marketplace currency. Amounts are held as exact decimals and
// floor-rounded to 2 fractional digits whenever they are written to an account.
type Credits struct {
	value decimal.Decimal
}

var (
	// MaxCredits is the highest balance an account may hold.
	MaxCredits = C(decimal.RequireFromString("999999.99"))
	// DailyDepositLimit caps the credits an account may deposit in one run.
	DailyDepositLimit = C(decimal.RequireFromString("1000.00"))
)

func C[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Credits {
	return Credits{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// ParseCredits parses a fixed-point decimal wire field like "001000.00".
func ParseCredits(s string) (Credits, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Credits{}, fmt.Errorf("invalid credits amount %q: %w", s, err)
	}
	return Credits{value: d}, nil
}

// Floor2 rounds the amount down to 2 fractional digits. Every account balance
// write goes through this rounding.
func (c Credits) Floor2() Credits { return Credits{value: c.value.RoundFloor(2)} }

func (c Credits) Equal(n Credits) bool              { return c.value.Equal(n.value) }
func (c Credits) IsZero() bool                      { return c.value.IsZero() }
func (c Credits) IsNegative() bool                  { return c.value.IsNegative() }
func (c Credits) LessThan(n Credits) bool           { return c.value.LessThan(n.value) }
func (c Credits) GreaterThan(n Credits) bool        { return c.value.GreaterThan(n.value) }
func (c Credits) GreaterThanOrEqual(n Credits) bool { return c.value.GreaterThanOrEqual(n.value) }

// binary operators.
func (c Credits) Add(n Credits) Credits { return Credits{value: c.value.Add(n.value)} }
func (c Credits) Sub(n Credits) Credits { return Credits{value: c.value.Sub(n.value)} }

// ApplyDiscount returns the amount reduced by a percentage discount.
// The computation is exact; rounding happens only on balance writes.
func (c Credits) ApplyDiscount(percent decimal.Decimal) Credits {
	factor := decimal.NewFromInt(1).Sub(percent.Div(decimal.NewFromInt(100)))
	return Credits{value: c.value.Mul(factor)}
}

// String formats the amount as a currency string for logs and reports.
func (c Credits) String() string {
	cur := *money.New(0, money.USD).Currency()
	dec := c.value.RoundFloor(2).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Wire returns the canonical 2-digit fixed-point representation used in
// transaction records and mismatch warnings.
func (c Credits) Wire() string { return c.value.RoundFloor(2).StringFixed(2) }

func (c Credits) MarshalJSON() ([]byte, error) {
	return c.value.RoundFloor(2).MarshalJSON()
}

func (c *Credits) UnmarshalJSON(data []byte) error {
	return c.value.UnmarshalJSON(data)
}
