package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "113.00", Money(decimal.NewFromInt(113)))
	assert.Equal(t, "0.73", Money(decimal.RequireFromString("0.725")))
	assert.Equal(t, "-5.00", Money(decimal.NewFromInt(-5)))
}

func TestCostLines(t *testing.T) {
	lines := CostLines(invoicedomain.CostBreakdown{
		Subtotal: decimal.NewFromInt(100),
		TaxRate:  taxdomain.Unknown,
		Total:    decimal.NewFromInt(100),
	})
	assert.Equal(t, []string{"Unknown", "Unknown", "Unknown", "None", "100.00"}, lines)

	lines = CostLines(invoicedomain.CostBreakdown{
		Subtotal:  decimal.NewFromInt(100),
		TaxRate:   taxdomain.NewRate(decimal.NewFromInt(10)),
		TaxAmount: invoicedomain.Amount(decimal.NewFromInt(10)),
		Shipping:  invoicedomain.Amount(decimal.NewFromInt(5)),
		Discount:  invoicedomain.Amount(decimal.NewFromInt(2)),
		Total:     decimal.NewFromInt(113),
	})
	assert.Equal(t, []string{"10", "10.00", "5.00", "2.00", "113.00"}, lines)
}

func TestDate(t *testing.T) {
	assert.Equal(t, "2024-02-29", Date(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)))
}
