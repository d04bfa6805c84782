// Package money provides fixed-point currency arithmetic. Amounts are stored
// as int64 minor units (cents) so that sums over the ledger are exact; the
// shopspring decimal type is used only at the edges for parsing, formatting
// and rate math.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// exponent is the number of minor-unit digits in the wallet currency.
const exponent = 2

// Amount is a monetary value in minor units. Negative values are debits.
type Amount int64

var (
	ErrMalformedAmount = errors.New("malformed amount")
	ErrTooPrecise      = errors.New("amount has more precision than the currency supports")
)

// FromUnits converts whole currency units to an Amount.
func FromUnits(units int64) Amount {
	return Amount(units * 100)
}

// Parse converts a human-entered decimal string ("104.99") to an Amount.
// More than two fractional digits is rejected rather than rounded, so a
// client can never be charged an amount it did not type.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrMalformedAmount
	}
	if d.Exponent() < -exponent {
		if !d.Equal(d.Round(exponent)) {
			return 0, ErrTooPrecise
		}
	}
	return Amount(d.Shift(exponent).IntPart()), nil
}

// Decimal returns the amount as a decimal in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -exponent)
}

// String formats the amount with the currency's full precision, e.g. "104.99".
func (a Amount) String() string {
	return a.Decimal().StringFixed(exponent)
}

// MulRate multiplies the amount by a rate and rounds half-up to the nearest
// minor unit. Deterministic for identical inputs.
func (a Amount) MulRate(rate decimal.Decimal) Amount {
	return Amount(a.Decimal().Mul(rate).Round(exponent).Shift(exponent).IntPart())
}

// Neg returns the additive inverse.
func (a Amount) Neg() Amount { return -a }

// Max returns the larger of two amounts.
func Max(a, b Amount) Amount {
	if a > b {
		return a
	}
	return b
}
