package api

import (
	"context"
	"net/http"

	"github.com/okian/swigup/internal/domain/profile"
)

// ProfileDependencies defines the interface for onboarding operations.
type ProfileDependencies interface {
	Profile(ctx context.Context) (profile.Profile, error)
	Onboard(ctx context.Context, name string, weightLbs float64, level profile.ActivityLevel) (profile.Profile, error)
}

// onboardRequest carries the three onboarding form fields.
type onboardRequest struct {
	Name          string  `json:"name"`
	WeightLbs     float64 `json:"weight_lbs"`
	ActivityLevel string  `json:"activity_level"`
}

// ProfileHandler handles profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleGetProfile handles GET /profile requests.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Profile(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleOnboard handles POST /profile requests.
func (h *ProfileHandler) HandleOnboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.onboard"
	var req onboardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, wrapKind(op, ErrBadRequest, err))
		return
	}
	level, err := profile.ParseActivityLevel(req.ActivityLevel)
	if err != nil {
		writeFailure(w, err)
		return
	}
	p, err := h.deps.Onboard(r.Context(), req.Name, req.WeightLbs, level)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
