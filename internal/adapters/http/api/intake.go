package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/swigup/internal/domain/hydration"
	"github.com/okian/swigup/internal/domain/intake"
	"github.com/okian/swigup/internal/domain/model"
)

// IntakeDependencies defines the interface for manual intake and period operations.
type IntakeDependencies interface {
	Hydration(ctx context.Context) (hydration.State, error)
	LogManual(ctx context.Context, eventID string, amountMl int) (model.IntakeResult, error)
	LogPreset(ctx context.Context, eventID, key string) (model.IntakeResult, error)
	StartNewPeriod(ctx context.Context) (hydration.State, error)
	Presets() []intake.Preset
}

// intakeRequest mirrors the OpenAPI schema for POST /intake. Exactly one of
// AmountMl and Preset is set.
type intakeRequest struct {
	EventID  string `json:"event_id"`
	AmountMl *int   `json:"amount_ml"`
	Preset   string `json:"preset"`
}

func (req intakeRequest) validate() error {
	switch {
	case req.AmountMl == nil && req.Preset == "":
		return errors.New("one of amount_ml or preset is required")
	case req.AmountMl != nil && req.Preset != "":
		return errors.New("amount_ml and preset are mutually exclusive")
	}
	return nil
}

// IntakeHandler handles manual intake requests.
type IntakeHandler struct {
	deps IntakeDependencies
}

// NewIntakeHandler creates a new intake handler.
func NewIntakeHandler(deps IntakeDependencies) *IntakeHandler {
	return &IntakeHandler{deps: deps}
}

// HandlePostIntake handles POST /intake requests.
func (h *IntakeHandler) HandlePostIntake(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_intake"
	var req intakeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, wrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, wrapKind(op, ErrBadRequest, err))
		return
	}

	var (
		res model.IntakeResult
		err error
	)
	if req.AmountMl != nil {
		res, err = h.deps.LogManual(r.Context(), req.EventID, *req.AmountMl)
	} else {
		res, err = h.deps.LogPreset(r.Context(), req.EventID, req.Preset)
	}
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleGetPresets handles GET /intake/presets requests.
func (h *IntakeHandler) HandleGetPresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Presets())
}

// HandleGetHydration handles GET /hydration requests.
func (h *IntakeHandler) HandleGetHydration(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Hydration(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HandleNewPeriod handles POST /period requests.
func (h *IntakeHandler) HandleNewPeriod(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.StartNewPeriod(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
