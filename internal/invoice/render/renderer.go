package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
	"github.com/smallbiznis/invoicefill/internal/invoice/format"
	"github.com/smallbiznis/invoicefill/internal/invoice/layout"
)

// LayoutSource yields the current layout table.
type LayoutSource interface {
	Get() layout.Table
}

// Renderer draws invoice fields on a blank page. The result is meant to be
// stamped over a template, never shown on its own.
type Renderer struct {
	layouts  LayoutSource
	compress bool
}

type Option func(*Renderer)

// WithoutCompression keeps content streams readable, handy in tests.
func WithoutCompression() Option {
	return func(r *Renderer) { r.compress = false }
}

func NewRenderer(layouts LayoutSource, opts ...Option) *Renderer {
	r := &Renderer{layouts: layouts, compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fields formats invoice data into the strings the layout places.
func Fields(data invoicedomain.InvoiceData) layout.Fields {
	return layout.Fields{
		Contact:     data.Contact.Lines(),
		Title:       data.Item.Title,
		Description: data.Item.Description,
		Quantity:    data.Item.Quantity,
		UnitPrice:   data.Item.UnitPrice,
		LineTotal:   data.Item.LineTotal,
		Subtotal:    format.Money(data.Costs.Subtotal),
		Costs:       format.CostLines(data.Costs),
		IssueDate:   format.Date(data.IssueDate),
		DueDate:     format.Date(data.DueDate),
	}
}

// Render returns a one-page overlay PDF.
func (r *Renderer) Render(ctx context.Context, data invoicedomain.InvoiceData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := r.layouts.Get()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: table.Page.Width, Ht: table.Page.Height},
	})
	pdf.SetCompression(r.compress)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("invoicefill", true)
	pdf.SetCreationDate(stamp(data.IssueDate))
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, p := range layout.Place(table, Fields(data)) {
		if p.Text == "" {
			continue
		}
		pdf.SetFont(table.Font, "B", p.Size)
		// gofpdf measures y from the top edge.
		pdf.Text(p.X, table.Page.Height-p.Y, tr(p.Text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render overlay: %w", err)
	}
	return buf.Bytes(), nil
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
