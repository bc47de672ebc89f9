package ranking

import "errors"

// Sentinel error kinds for leaderboard construction.
var (
	ErrDivisionByZero = errors.New("leaderboard entry has zero goal")
	ErrInvalidEntry   = errors.New("invalid leaderboard entry")
)
