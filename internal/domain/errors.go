package domain

import "errors"

// Sentinel errors separating "no data" from "could not fetch". The two have
// different correct caller behavior: render empty state vs retry.
var (
	// ErrNotFound means the record does not exist for this tenant.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable means the persistence layer could not be reached or
	// answered with a transient failure; the call is retryable.
	ErrUnavailable = errors.New("persistence unavailable")
)
