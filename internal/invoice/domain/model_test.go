package domain

import (
	"encoding/json"
	"testing"

	listingdomain "github.com/smallbiznis/invoicefill/internal/listing/domain"
	"github.com/stretchr/testify/assert"
)

func TestMergeFormPrefersForm(t *testing.T) {
	record := listingdomain.Record{
		listingdomain.FieldPrice: json.Number("10000"),
		listingdomain.FieldTitle: "Pumper",
	}
	form := FormData{
		FieldURL:                 "https://www.withgarage.com/listing/abc",
		listingdomain.FieldPrice: json.Number("9999"),
	}

	merged := MergeForm(record, form)

	assert.Equal(t, json.Number("9999"), merged[listingdomain.FieldPrice])
	assert.Equal(t, "Pumper", merged.Text(listingdomain.FieldTitle))
	assert.Equal(t, json.Number("10000"), record[listingdomain.FieldPrice])
}

func TestFormURL(t *testing.T) {
	assert.Equal(t, "", FormData{}.URL())
	assert.Equal(t, "", FormData{FieldURL: 42}.URL())
	assert.Equal(t, "x", FormData{FieldURL: "x"}.URL())
}

func TestContactLines(t *testing.T) {
	c := Contact{Name: "Ada", Phone: "555"}
	assert.Equal(t, []string{"Ada", "", "", "", "555"}, c.Lines())
}
