package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OptionalAmount is a money value that may be absent. Absent shipping
// renders as "Unknown", absent discount as "None".
type OptionalAmount struct {
	Value decimal.Decimal
	Valid bool
}

func Amount(v decimal.Decimal) OptionalAmount {
	return OptionalAmount{Value: v, Valid: true}
}

// ParseAmount converts a decoded JSON value into a decimal. Strings may
// carry a leading "$" and thousands separators. nil and "" are reported as
// not present.
func ParseAmount(v any) (decimal.Decimal, bool, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, false, nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("%w: %q", ErrInvalidAmount, t.String())
		}
		return d, true, nil
	case float64:
		return decimal.NewFromFloat(t), true, nil
	case int:
		return decimal.NewFromInt(int64(t)), true, nil
	case int64:
		return decimal.NewFromInt(t), true, nil
	case decimal.Decimal:
		return t, true, nil
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return decimal.Zero, false, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("%w: %q", ErrInvalidAmount, t)
		}
		return d, true, nil
	default:
		return decimal.Zero, false, fmt.Errorf("%w: unsupported type %T", ErrInvalidAmount, v)
	}
}

// ParseOptional treats absent and zero as "not provided".
func ParseOptional(v any) (OptionalAmount, error) {
	d, ok, err := ParseAmount(v)
	if err != nil {
		return OptionalAmount{}, err
	}
	if !ok || d.IsZero() {
		return OptionalAmount{}, nil
	}
	return Amount(d), nil
}
