package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Well-known listing fields used on the invoice.
const (
	FieldTitle       = "listingTitle"
	FieldDescription = "listingDescription"
	FieldPrice       = "sellingPrice"
	FieldName        = "name"
	FieldCompany     = "company"
	FieldAddress1    = "address1"
	FieldAddress2    = "address2"
	FieldZip         = "addressZip"
	FieldPhone       = "phone"
	FieldShipping    = "shippingPrice"
	FieldDiscount    = "discount"
)

// Record is a listing as returned by the listing service. Values are kept
// as decoded JSON (json.Number for numbers).
type Record map[string]any

func (r Record) Empty() bool {
	return len(r) == 0
}

// Text renders a field for display. Missing and null fields render as "".
func (r Record) Text(key string) string {
	return TextValue(r[key])
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// TextValue formats a decoded JSON value as display text.
func TextValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Fetcher loads a listing by its opaque identifier.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (Record, error)
}
