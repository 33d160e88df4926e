package domain

import "strings"

const listingMarker = "listing/"

// ListingIDFromURL extracts <id> from ".../listing/<id>". The URL must
// contain the marker exactly once.
func ListingIDFromURL(rawURL string) (string, error) {
	parts := strings.Split(rawURL, listingMarker)
	if len(parts) != 2 {
		return "", ErrInvalidListingURL
	}
	return parts[1], nil
}
