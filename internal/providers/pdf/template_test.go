package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicefill/internal/config"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
	"github.com/smallbiznis/invoicefill/internal/invoice/layout"
	"github.com/smallbiznis/invoicefill/internal/invoice/merge"
	"github.com/smallbiznis/invoicefill/internal/invoice/render"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateTemplateIsSinglePage(t *testing.T) {
	doc, err := New().GenerateTemplate(context.Background(), TemplateData{
		SellerName:    "Garage",
		SellerAddress: "1 Main St, Springfield",
		SellerContact: "hello@garage.example",
		Footer:        "Thanks!",
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	n, err := merge.NewMerger(zap.NewNop()).PageCount(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGenerateTemplateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().GenerateTemplate(ctx, DefaultTemplateData())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTemplateAcceptsOverlay(t *testing.T) {
	ctx := context.Background()
	template, err := New().GenerateTemplate(ctx, DefaultTemplateData())
	require.NoError(t, err)

	issued := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	overlay, err := render.NewRenderer(config.NewStaticLayoutHolder(layout.Default())).Render(ctx, invoicedomain.InvoiceData{
		Contact: invoicedomain.Contact{Name: "Ana", Company: "Acme"},
		Item: invoicedomain.LineItem{
			Title:     "Oak Desk",
			Quantity:  "1",
			UnitPrice: "100.00",
			LineTotal: "100.00",
		},
		Costs: invoicedomain.CostBreakdown{
			Subtotal: decimal.NewFromInt(100),
			TaxRate:  taxdomain.Unknown,
			Total:    decimal.NewFromInt(100),
		},
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	m := merge.NewMerger(zap.NewNop())
	out, err := m.Merge(ctx, template, overlay)
	require.NoError(t, err)

	n, err := m.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
