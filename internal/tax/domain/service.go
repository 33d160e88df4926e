package domain

import "context"

// Lookup resolves a sales tax rate for a postal code. Implementations never
// fail: anything that goes wrong yields Unknown.
type Lookup interface {
	Lookup(ctx context.Context, zip string) Rate
}

// Cache stores successful lookups keyed by postal code.
type Cache interface {
	Get(ctx context.Context, zip string) (Rate, bool, error)
	Set(ctx context.Context, zip string, rate Rate) error
}
