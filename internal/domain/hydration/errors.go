package hydration

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidAmount      = errors.New("invalid intake amount")
	ErrInvariantViolation = errors.New("hydration invariant violated")
)
