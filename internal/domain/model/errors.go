package model

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownPosition = errors.New("unknown position")
)
