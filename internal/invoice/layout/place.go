package layout

// Fields are the already-formatted strings for one invoice.
type Fields struct {
	Contact     []string
	Title       string
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
	Subtotal    string
	// Costs follow the subtotal: tax rate, tax amount, shipping, discount, total.
	Costs     []string
	IssueDate string
	DueDate   string
}

// Placement is one string at a bottom-left-origin coordinate.
type Placement struct {
	X    float64
	Y    float64
	Size float64
	Text string
}

// Place resolves every field to a coordinate using the table.
func Place(t Table, f Fields) []Placement {
	out := make([]Placement, 0, 32)

	for _, x := range t.Contact.Xs {
		y := t.Contact.Y
		for _, line := range f.Contact {
			out = append(out, Placement{X: x, Y: y, Size: t.Contact.Size, Text: line})
			y -= t.Contact.Step
		}
	}

	lh := t.LineHeight()
	for i, line := range WrapTitle(f.Title, t.Item.TitleHyphenAt) {
		out = append(out, Placement{X: t.Item.TitleX, Y: t.Item.Y - float64(i)*lh, Size: t.Item.Size, Text: line})
	}
	for i, line := range Wrap(NormalizeDescription(f.Description), t.Item.DescriptionWidth) {
		out = append(out, Placement{X: t.Item.DescriptionX, Y: t.Item.Y - float64(i)*lh, Size: t.Item.Size, Text: line})
	}
	trailing := []string{f.Quantity, f.UnitPrice, f.LineTotal}
	for i, x := range t.TrailingXs() {
		if i >= len(trailing) {
			break
		}
		out = append(out, Placement{X: x, Y: t.Item.Y, Size: t.Item.Size, Text: trailing[i]})
	}

	out = append(out, Placement{X: t.Costs.X, Y: t.Costs.SubtotalY, Size: t.Costs.Size, Text: f.Subtotal})
	y := t.Costs.FirstY
	for _, v := range f.Costs {
		out = append(out, Placement{X: t.Costs.X, Y: y, Size: t.Costs.Size, Text: v})
		y -= t.Costs.Step
	}

	out = append(out,
		Placement{X: t.Dates.X, Y: t.Dates.IssueY, Size: t.Dates.Size, Text: f.IssueDate},
		Placement{X: t.Dates.X, Y: t.Dates.DueY, Size: t.Dates.Size, Text: f.DueDate},
	)
	return out
}
