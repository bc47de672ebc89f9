package service

import "errors"

// Sentinel error kinds for session operations.
var (
	ErrNotOnboarded        = errors.New("profile not onboarded")
	ErrUnknownPreset       = errors.New("unknown intake preset")
	ErrScanSessionNotFound = errors.New("scan session not found")
	ErrScanSessionClosed   = errors.New("scan session closed")
)
