// Package money centralizes conversion of raw, externally supplied price
// strings into exact decimals. Every ingress boundary (API input, CSV
// rows) goes through Parse so the rounding and range rules live in one
// place; values stay decimal until the JSON edge.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmpty            = errors.New("price is empty")
	ErrMalformed        = errors.New("price is not a valid decimal number")
	ErrNegative         = errors.New("price must not be negative")
	ErrTooManyDecimals  = errors.New("price must have at most 2 decimal places")
	ErrOutOfRange       = errors.New("price is out of range")
	ErrQuantityPositive = errors.New("quantity must be a positive integer")
)

// maxPrice mirrors the NUMERIC(10,2) column: values must stay below 10^8.
var maxPrice = decimal.New(1, 8)

// Parse converts a decimal-formatted string such as "19.99" or "600" into
// an exact decimal. It rejects malformed input, negative values, more
// than 2 fractional digits and values that do not fit the price column.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmpty
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrMalformed
	}

	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}

	// Trailing zeros such as "19.990" are still two-decimal values, so
	// compare against the truncation instead of the raw exponent.
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, ErrTooManyDecimals
	}
	d = d.Truncate(2)

	if d.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, ErrOutOfRange
	}

	return d, nil
}

// Total computes the point-in-time total of a sale: unit price times
// quantity, exact, with no rounding involved since the price carries at
// most 2 fractional digits.
func Total(price decimal.Decimal, quantity int32) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrQuantityPositive
	}
	return price.Mul(decimal.NewFromInt32(quantity)), nil
}
