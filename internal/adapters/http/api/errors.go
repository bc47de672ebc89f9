package api

import (
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/swigup/internal/app"
	"github.com/okian/swigup/internal/domain/hydration"
	"github.com/okian/swigup/internal/domain/profile"
	"github.com/okian/swigup/internal/domain/ranking"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// wrapKind tags err with op and a sentinel kind so callers can errors.Is it.
func wrapKind(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// statusFor maps a session error onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, profile.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, hydration.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, service.ErrUnknownPreset):
		return http.StatusBadRequest, "unknown_preset"
	case errors.Is(err, service.ErrNotOnboarded):
		return http.StatusConflict, "not_onboarded"
	case errors.Is(err, service.ErrScanSessionNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrScanSessionClosed):
		return http.StatusGone, "scan_session_closed"
	case errors.Is(err, ranking.ErrDivisionByZero), errors.Is(err, ranking.ErrInvalidEntry):
		return http.StatusInternalServerError, "roster_misconfigured"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
