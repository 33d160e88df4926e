package domain

import "errors"

var (
	ErrInvalidListingURL   = errors.New("not a valid listing URL")
	ErrListingNotFound     = errors.New("listing id does not match an existing listing")
	ErrMissingSellingPrice = errors.New("listing has no selling price")
	ErrInvalidAmount       = errors.New("invalid amount")
)
