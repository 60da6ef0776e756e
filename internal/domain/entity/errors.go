package entity

import "errors"

var (
	// ErrInvalidAPIKey is returned when Bitpanda rejects the credential with
	// HTTP 401 during setup validation.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrValidationFailed covers every other credential-check failure, so the
	// setup flow can distinguish a bad key from a flaky validation call.
	ErrValidationFailed = errors.New("API key validation failed")

	// ErrNoCategories rejects an empty wallet category selection.
	ErrNoCategories = errors.New("no wallet categories selected")

	// ErrNotReady signals that no poll cycle has produced data yet.
	ErrNotReady = errors.New("no data received from Bitpanda API")
)
