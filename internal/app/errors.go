package service

import "errors"

// Sentinel error kinds returned by the Service.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrNotConfigured    = errors.New("service dependency not configured")
	ErrTeamNotFound     = errors.New("team not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUnknownQuality   = errors.New("quality not offered for position")
	ErrInvalidPIN       = errors.New("pin must be 4 digits")
	ErrWrongPIN         = errors.New("wrong pin")
)
