package transform

import "errors"

// Transform errors.
var (
	// ErrSchema is returned when an input row is missing a required
	// field. Fatal for the builder that detects it; malformed input is
	// never repaired or retried.
	ErrSchema = errors.New("input schema violation")

	// ErrInsufficientData is returned by the customer analytics builder
	// when fewer than 4 distinct customers are present. Quartile
	// segmentation is undefined below 4 groups.
	ErrInsufficientData = errors.New("insufficient data for quartile segmentation")
)
