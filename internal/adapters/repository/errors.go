package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrNotFound      = errors.New("customer not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrMissingColumn = errors.New("csv header missing column")
	ErrInvalidRow    = errors.New("invalid csv row")
)
