package format

import (
	"time"

	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
)

const (
	UnknownLabel = "Unknown"
	NoneLabel    = "None"
	DateLayout   = time.DateOnly
)

// Money renders a decimal with two fraction digits ("113.00").
func Money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// OptionalMoney renders an amount or the given placeholder.
func OptionalMoney(v invoicedomain.OptionalAmount, placeholder string) string {
	if !v.Valid {
		return placeholder
	}
	return Money(v.Value)
}

// Rate renders a tax rate in percentage points ("7.25") or "Unknown".
func Rate(r taxdomain.Rate) string {
	return r.String()
}

// Date renders YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// CostLines returns the cost block values in drawing order after the
// subtotal: tax rate, tax amount, shipping, discount, total.
func CostLines(c invoicedomain.CostBreakdown) []string {
	return []string{
		Rate(c.TaxRate),
		OptionalMoney(c.TaxAmount, UnknownLabel),
		OptionalMoney(c.Shipping, UnknownLabel),
		OptionalMoney(c.Discount, NoneLabel),
		Money(c.Total),
	}
}
