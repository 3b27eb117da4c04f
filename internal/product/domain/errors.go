package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidTaxRate  = errors.New("invalid_tax_rate")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
