package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		id   string
		err  error
	}{
		{name: "valid", url: "https://www.withgarage.com/listing/15045d96-b358-4109-aa43-2bde7e9ca49c", id: "15045d96-b358-4109-aa43-2bde7e9ca49c"},
		{name: "no marker", url: "https://example.com/nope", err: ErrInvalidListingURL},
		{name: "empty", url: "", err: ErrInvalidListingURL},
		{name: "marker twice", url: "https://x/listing/listing/abc", err: ErrInvalidListingURL},
		{name: "empty id is passed through", url: "https://x/listing/", id: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ListingIDFromURL(tc.url)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.id, id)
		})
	}
}
