package storage

import "errors"

// Storage errors.
var (
	// ErrNotFound is returned when a requested record does not exist,
	// including aggregate queries over empty tables.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when a raw dataset cannot be
	// retrieved from the staging zone. The pipeline aborts the run on
	// this error; no partial transform proceeds.
	ErrUnavailable = errors.New("dataset unavailable")
)
