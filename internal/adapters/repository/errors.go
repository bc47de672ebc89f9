package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrStorageCorruption = errors.New("stored profile is corrupt")
	ErrUnsupportedFormat = errors.New("unsupported profile format version")
	ErrClosed            = errors.New("store closed")
)
