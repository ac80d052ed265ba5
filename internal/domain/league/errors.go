package league

import "errors"

// Sentinel error kinds for this package.
var (
	ErrQualityOutOfRange = errors.New("quality selection out of range")
)
