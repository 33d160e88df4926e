package render

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
	"github.com/smallbiznis/invoicefill/internal/invoice/layout"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLayout layout.Table

func (s staticLayout) Get() layout.Table { return layout.Table(s) }

func sampleData() invoicedomain.InvoiceData {
	issued := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return invoicedomain.InvoiceData{
		Contact: invoicedomain.Contact{Name: "Ada Lovelace", Company: "Engines Ltd", Phone: "555-0100"},
		Item: invoicedomain.LineItem{
			Title:       "Vintage Firetruck",
			Description: "Runs great.\nNew tires.",
			Quantity:    "1",
			UnitPrice:   "9999",
			LineTotal:   "9999",
		},
		Costs: invoicedomain.CostBreakdown{
			Subtotal: decimal.NewFromInt(9999),
			TaxRate:  taxdomain.Unknown,
			Total:    decimal.NewFromInt(9999),
		},
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 30),
	}
}

func TestRenderDrawsFields(t *testing.T) {
	r := NewRenderer(staticLayout(layout.Default()), WithoutCompression())

	out, err := r.Render(context.Background(), sampleData())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	for _, want := range []string{
		"(Ada Lovelace) Tj",
		"(Firetru-) Tj",
		"(Runs great. // New tires.) Tj",
		"(9999.00) Tj",
		"(Unknown) Tj",
		"(None) Tj",
		"(2024-03-01) Tj",
		"(2024-03-31) Tj",
		"/Helvetica-Bold",
		"/MediaBox [0 0 612.00 792.00]",
	} {
		assert.Contains(t, string(out), want)
	}
}

func TestRenderUsesBottomLeftOrigin(t *testing.T) {
	r := NewRenderer(staticLayout(layout.Default()), WithoutCompression())

	out, err := r.Render(context.Background(), sampleData())
	require.NoError(t, err)

	// Issue date sits at x=480, y=750 in PDF user space.
	assert.Contains(t, string(out), "BT 480.00 750.00 Td (2024-03-01) Tj ET")
}

func TestRenderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(staticLayout(layout.Default())).Render(ctx, sampleData())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderTranslatesLatin1(t *testing.T) {
	data := sampleData()
	data.Contact.Name = "José Ñandú"

	out, err := NewRenderer(staticLayout(layout.Default()), WithoutCompression()).Render(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "(Jos\xe9 \xd1and\xfa) Tj")
}
