package storefront

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Record layouts, one per operation code family. Fields are fixed-width and
// space separated; a record that fails its layout is a fatal parse error.
var (
	// code(2) username(15) type(2) balance(9)
	loginCreateLayout = regexp.MustCompile(`^(\d{2}) (.{15}) (AA|FS|BS|SS) (\d{6}\.\d{2})$`)
	// code(2) username(15) filler(2) unused(9)
	usernameOnlyLayout = regexp.MustCompile(`^(\d{2}) (.{15}) ( {2}) (0{6}\.0{2}|0{9})$`)
	// code(2) username(15) filler(2) amount(9)
	addCreditLayout = regexp.MustCompile(`^(\d{2}) (.{15}) ( {2}) (\d{6}\.\d{2})$`)
	// code(2) buyer(15) seller(15) amount(9)
	refundLayout = regexp.MustCompile(`^(\d{2}) (.{15}) (.{15}) (\d{6}\.\d{2})$`)
	// code(2) listing(25) seller(15) discount(5) price(6)
	sellLayout = regexp.MustCompile(`^(\d{2}) (.{25}) (.{15}) (\d{2}\.\d{2}) (\d{3}\.\d{2})$`)
	// code(2) listing(25) seller-or-owner(15) buyer-or-receiver(15)
	tradeLayout = regexp.MustCompile(`^(\d{2}) (.{25}) (.{15}) (.{15})$`)
	// code(2) listing(25) owner(15) blank(15)
	removeLayout = regexp.MustCompile(`^(\d{2}) (.{25}) (.{15}) ( {15})$`)
)

// ParseRecord converts one fixed-width record line into a typed transaction.
// Unknown codes and layout mismatches wrap ErrParse; they never reach Apply.
func ParseRecord(line string) (Transaction, error) {
	if len(line) < 2 {
		return nil, fmt.Errorf("%w: record %q is too short to carry a code", ErrParse, line)
	}
	code := CommandType(line[:2])

	switch code {
	case CmdLogin, CmdCreate:
		m, err := match(loginCreateLayout, line)
		if err != nil {
			return nil, err
		}
		typ, err := ParseCapability(m[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		balance, err := parseAmount(m[4])
		if err != nil {
			return nil, err
		}
		if code == CmdLogin {
			return NewLogin(name(m[2]), typ, balance), nil
		}
		return NewCreate(name(m[2]), typ, balance), nil

	case CmdDelete, CmdAuction, CmdLogout:
		m, err := match(usernameOnlyLayout, line)
		if err != nil {
			return nil, err
		}
		switch code {
		case CmdDelete:
			return NewDelete(name(m[2])), nil
		case CmdAuction:
			return NewAuctionSale(name(m[2])), nil
		default:
			return NewLogout(), nil
		}

	case CmdAddCredit:
		m, err := match(addCreditLayout, line)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(m[4])
		if err != nil {
			return nil, err
		}
		return NewAddCredit(name(m[2]), amount), nil

	case CmdRefund:
		m, err := match(refundLayout, line)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(m[4])
		if err != nil {
			return nil, err
		}
		return NewRefund(name(m[2]), name(m[3]), amount), nil

	case CmdSell:
		m, err := match(sellLayout, line)
		if err != nil {
			return nil, err
		}
		discount, err := decimal.NewFromString(m[4])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid discount %q", ErrParse, m[4])
		}
		price, err := parseAmount(m[5])
		if err != nil {
			return nil, err
		}
		return NewSell(name(m[2]), name(m[3]), discount, price), nil

	case CmdBuy:
		m, err := match(tradeLayout, line)
		if err != nil {
			return nil, err
		}
		return NewBuy(name(m[2]), name(m[3]), name(m[4])), nil

	case CmdRemove:
		m, err := match(removeLayout, line)
		if err != nil {
			return nil, err
		}
		return NewRemoveListing(name(m[2]), name(m[3])), nil

	case CmdGift:
		m, err := match(tradeLayout, line)
		if err != nil {
			return nil, err
		}
		return NewGift(name(m[2]), name(m[3]), name(m[4])), nil
	}

	return nil, fmt.Errorf("%w: code %q is invalid", ErrParse, string(code))
}

func match(layout *regexp.Regexp, line string) ([]string, error) {
	m := layout.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %q does not follow the record layout", ErrParse, line)
	}
	return m, nil
}

// name trims the whitespace padding of a fixed-width username or listing name.
func name(field string) string { return strings.TrimSpace(field) }

func parseAmount(field string) (Credits, error) {
	c, err := ParseCredits(field)
	if err != nil {
		return Credits{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return c, nil
}
