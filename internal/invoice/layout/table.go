package layout

import (
	"errors"
	"fmt"
)

// PageSize is expressed in points.
type PageSize struct {
	Name   string  `mapstructure:"name"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

var Letter = PageSize{Name: "Letter", Width: 612, Height: 792}

type ContactBlock struct {
	Xs   []float64 `mapstructure:"xs"`
	Y    float64   `mapstructure:"y"`
	Size float64   `mapstructure:"size"`
	Step float64   `mapstructure:"step"`
}

type ItemBlock struct {
	TitleX           float64   `mapstructure:"titleX"`
	DescriptionX     float64   `mapstructure:"descriptionX"`
	Y                float64   `mapstructure:"y"`
	Size             float64   `mapstructure:"size"`
	Leading          float64   `mapstructure:"leading"`
	DescriptionWidth int       `mapstructure:"descriptionWidth"`
	TitleHyphenAt    int       `mapstructure:"titleHyphenAt"`
	TrailingOffsets  []float64 `mapstructure:"trailingOffsets"`
}

type CostBlock struct {
	X         float64 `mapstructure:"x"`
	SubtotalY float64 `mapstructure:"subtotalY"`
	FirstY    float64 `mapstructure:"firstY"`
	Step      float64 `mapstructure:"step"`
	Size      float64 `mapstructure:"size"`
}

type DateBlock struct {
	X      float64 `mapstructure:"x"`
	IssueY float64 `mapstructure:"issueY"`
	DueY   float64 `mapstructure:"dueY"`
	Size   float64 `mapstructure:"size"`
}

// Table holds every coordinate the overlay uses. Coordinates have their
// origin at the bottom-left corner of the page.
type Table struct {
	Page    PageSize     `mapstructure:"page"`
	Font    string       `mapstructure:"font"`
	Contact ContactBlock `mapstructure:"contact"`
	Item    ItemBlock    `mapstructure:"item"`
	Costs   CostBlock    `mapstructure:"costs"`
	Dates   DateBlock    `mapstructure:"dates"`
}

// Default matches the bundled sales-invoice template.
func Default() Table {
	return Table{
		Page: Letter,
		Font: "Helvetica",
		Contact: ContactBlock{
			Xs:   []float64{125, 475},
			Y:    640,
			Size: 9,
			Step: 18,
		},
		Item: ItemBlock{
			TitleX:           25,
			DescriptionX:     65,
			Y:                530,
			Size:             8,
			Leading:          1.2,
			DescriptionWidth: 63,
			TitleHyphenAt:    7,
			TrailingOffsets:  []float64{320, 40, 90},
		},
		Costs: CostBlock{
			X:         510,
			SubtotalY: 263,
			FirstY:    226,
			Step:      18,
			Size:      10,
		},
		Dates: DateBlock{
			X:      480,
			IssueY: 750,
			DueY:   680,
			Size:   9,
		},
	}
}

// TrailingXs returns the absolute x of quantity, unit price and line total.
func (t Table) TrailingXs() []float64 {
	xs := make([]float64, 0, len(t.Item.TrailingOffsets))
	x := t.Item.DescriptionX
	for _, off := range t.Item.TrailingOffsets {
		x += off
		xs = append(xs, x)
	}
	return xs
}

// LineHeight is the leading for multi-line item text.
func (t Table) LineHeight() float64 {
	leading := t.Item.Leading
	if leading <= 0 {
		leading = 1.2
	}
	return t.Item.Size * leading
}

var (
	ErrEmptyContactColumns = errors.New("layout: contact.xs cannot be empty")
	ErrInvalidPage         = errors.New("layout: page width and height must be positive")
)

// Validate rejects tables the renderer cannot draw.
func (t Table) Validate() error {
	if t.Page.Width <= 0 || t.Page.Height <= 0 {
		return ErrInvalidPage
	}
	if len(t.Contact.Xs) == 0 {
		return ErrEmptyContactColumns
	}
	if len(t.Item.TrailingOffsets) != 3 {
		return fmt.Errorf("layout: item.trailingOffsets needs 3 entries, got %d", len(t.Item.TrailingOffsets))
	}
	if t.Item.DescriptionWidth <= 0 {
		return errors.New("layout: item.descriptionWidth must be positive")
	}
	for name, size := range map[string]float64{
		"contact.size": t.Contact.Size,
		"item.size":    t.Item.Size,
		"costs.size":   t.Costs.Size,
		"dates.size":   t.Dates.Size,
	} {
		if size <= 0 {
			return fmt.Errorf("layout: %s must be positive", name)
		}
	}
	return nil
}
