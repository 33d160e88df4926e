package cost

import (
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
)

// MoneyPlaces is the precision money is rounded to.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Compute derives the cost block. Unknown tax, unknown shipping and missing
// discount are left out of the total instead of failing it.
//
// The tax amount is rounded half away from zero to cents before it joins
// the total.
func Compute(subtotal decimal.Decimal, rate taxdomain.Rate, shipping, discount invoicedomain.OptionalAmount) invoicedomain.CostBreakdown {
	out := invoicedomain.CostBreakdown{
		Subtotal: subtotal,
		TaxRate:  rate,
		Shipping: shipping,
		Discount: discount,
	}

	total := subtotal
	if pct, ok := rate.Percent(); ok {
		tax := subtotal.Mul(pct).Div(hundred).Round(MoneyPlaces)
		out.TaxAmount = invoicedomain.Amount(tax)
		total = total.Add(tax)
	}
	if shipping.Valid {
		total = total.Add(shipping.Value)
	}
	if discount.Valid {
		total = total.Sub(discount.Value)
	}

	out.Total = total
	return out
}
