// Package money holds currency amounts as integer cents so repeated keypad
// shifts and running totals never drift.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is an amount in the smallest currency unit.
type Cents int64

// FromDecimal rounds d to two places and returns it as cents.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Round(2).Shift(2).IntPart())
}

// Parse reads a decimal amount such as "7", "7.5" or "7.00".
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Decimal returns c as a two-place decimal.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats c with exactly two fraction digits, e.g. "7.00".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Label prefixes the amount with a currency symbol, e.g. "RM7.00".
func (c Cents) Label(currency string) string {
	return currency + c.String()
}

// Mul returns c multiplied by a quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}
