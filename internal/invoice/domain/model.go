package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	listingdomain "github.com/smallbiznis/invoicefill/internal/listing/domain"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
)

// FieldURL is the form key carrying the listing page URL.
const FieldURL = "url"

// FormData is the caller-supplied request body.
type FormData map[string]any

// URL returns the url field, or "" when missing or not a string.
func (f FormData) URL() string {
	s, _ := f[FieldURL].(string)
	return s
}

// CostBreakdown is derived per request and never stored.
type CostBreakdown struct {
	Subtotal  decimal.Decimal
	TaxRate   taxdomain.Rate
	TaxAmount OptionalAmount
	Shipping  OptionalAmount
	Discount  OptionalAmount
	Total     decimal.Decimal
}

// Contact is the five-line address block.
type Contact struct {
	Name     string
	Company  string
	Address1 string
	Address2 string
	Phone    string
}

func (c Contact) Lines() []string {
	return []string{c.Name, c.Company, c.Address1, c.Address2, c.Phone}
}

// LineItem is the single item row on the invoice.
type LineItem struct {
	Title       string
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

// InvoiceData is everything the overlay draws.
type InvoiceData struct {
	Contact   Contact
	Item      LineItem
	Costs     CostBreakdown
	IssueDate time.Time
	DueDate   time.Time
}

// MergeForm copies the listing and lays form values over it.
func MergeForm(record listingdomain.Record, form FormData) listingdomain.Record {
	merged := record.Clone()
	for k, v := range form {
		merged[k] = v
	}
	return merged
}

// Service generates a filled invoice PDF.
type Service interface {
	Generate(ctx context.Context, form FormData) ([]byte, error)
}
