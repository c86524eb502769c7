package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value expressed in minor units (pence, cents) of an
// ISO-4217 currency. Minor units are integers; no floating point anywhere.
type Amount struct {
	Currency   string `json:"currency"`
	MinorUnits int64  `json:"minorUnits"`
}

// Decimal returns the amount in major units, e.g. 1250 pence -> 12.50.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.MinorUnits, -2)
}

// String formats as "GBP 12.50".
func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.Currency, a.Decimal().StringFixed(2))
}

// SameCurrency reports whether both amounts share a currency code.
// Amounts in different currencies are never comparable.
func (a Amount) SameCurrency(b Amount) bool {
	return a.Currency == b.Currency
}

// Covers reports whether a is enough to pay b: same currency and at least as
// many minor units. A currency mismatch is treated as "cannot cover".
func (a Amount) Covers(b Amount) bool {
	return a.SameCurrency(b) && a.MinorUnits >= b.MinorUnits
}

// IsZero reports whether the amount carries no currency and no value.
func (a Amount) IsZero() bool {
	return a.Currency == "" && a.MinorUnits == 0
}
