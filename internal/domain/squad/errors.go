package squad

import "errors"

// Sentinel error kinds for this package. Input errors are recoverable: the
// caller re-prompts and the session state does not change.
var (
	ErrEmptySquad      = errors.New("squad has no players")
	ErrInvalidChoice   = errors.New("invalid menu choice")
	ErrInvalidQuality  = errors.New("invalid quality selection")
	ErrUnexpectedInput = errors.New("input not expected in current state")
	ErrFinalized       = errors.New("session already finalized")
)
