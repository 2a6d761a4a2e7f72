package errors

import "errors"

// Configuration errors.
var (
	ErrServerURLNotSet = errors.New("server URL is not configured")
)

// Domain errors.
var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrStopNotFound     = errors.New("stop not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNotLinked        = errors.New("no employee linked to this device")
	ErrReadOnlyTrip     = errors.New("trip is read-only")
	ErrNotImported      = errors.New("trip has no remote id to refresh from")
)

// Server/transport errors.
var (
	ErrAPIRequest  = errors.New("API request failed")
	ErrAPIResponse = errors.New("unexpected API response")
)
