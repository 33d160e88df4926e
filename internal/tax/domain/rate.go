package domain

import "github.com/shopspring/decimal"

// Rate is a sales tax rate in percentage points, or Unknown when no lookup
// produced a usable value.
type Rate struct {
	value decimal.Decimal
	known bool
}

// Unknown marks a rate that could not be determined.
var Unknown = Rate{}

const unknownLabel = "Unknown"

// NewRate wraps a percentage (7.25 means 7.25%).
func NewRate(percent decimal.Decimal) Rate {
	return Rate{value: percent, known: true}
}

// RateFromFraction converts a fractional rate (0.0725) to percentage points.
func RateFromFraction(fraction decimal.Decimal) Rate {
	return NewRate(fraction.Shift(2))
}

func (r Rate) Known() bool {
	return r.known
}

// Percent returns the rate in percentage points. ok is false for Unknown.
func (r Rate) Percent() (decimal.Decimal, bool) {
	return r.value, r.known
}

// String renders up to four fraction digits, or "Unknown".
func (r Rate) String() string {
	if !r.known {
		return unknownLabel
	}
	return r.value.Round(4).String()
}
