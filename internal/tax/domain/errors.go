package domain

import "errors"

var (
	ErrMissingZip       = errors.New("missing_zip")
	ErrNoTaxData        = errors.New("no_tax_data")
	ErrInvalidTotalRate = errors.New("invalid_total_rate")
)
