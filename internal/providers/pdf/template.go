package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var costLabels = []string{"Tax rate", "Tax", "Shipping", "Discount", "Total"}

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

// GenerateTemplate renders a single Letter page with labels placed beside
// the spots the overlay fills in.
func (p *MarotoProvider) GenerateTemplate(ctx context.Context, data TemplateData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(8).
		Build()

	m := maroto.New(cfg)

	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	m.AddRow(10,
		text.NewCol(6, "INVOICE", props.Text{Size: 20, Style: fontstyle.Bold}),
		col.New(2),
		text.NewCol(2, "Issued", label),
		col.New(2),
	)
	m.AddRow(14,
		col.New(6).Add(
			text.New(data.SellerName, props.Text{Size: 10, Style: fontstyle.Bold}),
			text.New(data.SellerAddress, props.Text{Size: 8, Top: 5}),
			text.New(data.SellerContact, props.Text{Size: 8, Top: 9}),
		),
		col.New(6),
	)
	m.AddRow(12,
		col.New(8),
		text.NewCol(2, "Due", label),
		col.New(2),
	)
	m.AddRow(8,
		text.NewCol(6, "Bill to", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(6, "Ship to", props.Text{Size: 9, Style: fontstyle.Bold}),
	)
	m.AddRow(38, col.New(12))

	header := props.Text{Size: 8, Style: fontstyle.Bold}
	m.AddRow(8,
		text.NewCol(1, "Item", header),
		text.NewCol(6, "Description", header),
		text.NewCol(2, "Qty", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}),
		text.NewCol(1, "Price", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(85, col.New(12))

	m.AddRow(13,
		col.New(8),
		text.NewCol(2, "Subtotal", label),
		col.New(2),
	)
	for _, l := range costLabels {
		m.AddRow(6.35,
			col.New(8),
			text.NewCol(2, l, label),
			col.New(2),
		)
	}

	m.AddRow(12,
		text.NewCol(12, data.Footer, props.Text{Size: 8, Top: 4, Align: align.Center}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}
	return doc.GetBytes(), nil
}
