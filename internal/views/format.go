// Package views derives display data from store state. Everything here is
// a pure function of its arguments.
package views

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO code used when none is configured
const DefaultCurrency = "INR"

var hundred = decimal.NewFromInt(100)

// Formatter renders amounts in one currency
type Formatter struct {
	cur money.Currency
}

// NewFormatter returns a Formatter for an ISO currency code. Unknown codes
// fall back to printing the code after the amount.
func NewFormatter(code string) Formatter {
	if code == "" {
		code = DefaultCurrency
	}
	// money.New never returns a nil currency, GetCurrency does
	cur := *money.New(0, strings.ToUpper(code)).Currency()
	if cur.Template == "" {
		cur.Template = "1 $"
		cur.Grapheme = cur.Code
		cur.Thousand = ","
	}
	return Formatter{cur: cur}
}

// Symbol returns the currency grapheme, e.g. "₹"
func (f Formatter) Symbol() string {
	return f.cur.Grapheme
}

// Whole formats an amount rounded to whole currency units with thousands
// separators: 575000.4 becomes "₹575,000".
func (f Formatter) Whole(amount decimal.Decimal) string {
	return money.NewFormatter(0, f.cur.Decimal, f.cur.Thousand, f.cur.Grapheme, f.cur.Template).
		Format(amount.Round(0).IntPart())
}

// Thousands formats an axis tick as whole thousands: 575000 becomes "₹575K"
func (f Formatter) Thousands(amount decimal.Decimal) string {
	k := amount.Div(decimal.NewFromInt(1000)).Round(0)
	return money.NewFormatter(0, f.cur.Decimal, "", f.cur.Grapheme, f.cur.Template).
		Format(k.IntPart()) + "K"
}

// percentChange returns (to-from)/from*100 signed with one decimal, such as
// "+12.5%" or "-3.0%". A zero base yields "0%".
func percentChange(from, to decimal.Decimal) (string, bool) {
	if from.IsZero() {
		return "0%", true
	}
	change := to.Sub(from).Div(from).Mul(hundred)
	return signed(change), !change.IsNegative()
}

func signed(d decimal.Decimal) string {
	s := d.StringFixed(1)
	if !d.IsNegative() {
		s = "+" + s
	}
	return s + "%"
}
