package api

import (
	"context"
	"net/http"

	"github.com/okian/swigup/internal/domain/model"
)

// ScanDependencies defines the interface for scan decode delivery.
type ScanDependencies interface {
	Scan(ctx context.Context, eventID, text string) (model.IntakeResult, error)
	OpenScanSession(ctx context.Context) (string, error)
	DeliverScan(ctx context.Context, sessionID, eventID, text string) (model.IntakeResult, error)
	CloseScanSession(ctx context.Context, sessionID string) error
}

// decodeRequest carries one decoded scan. Text is passed through verbatim.
type decodeRequest struct {
	EventID string `json:"event_id"`
	Text    string `json:"text"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

// ScanHandler handles scan requests.
type ScanHandler struct {
	deps ScanDependencies
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(deps ScanDependencies) *ScanHandler {
	return &ScanHandler{deps: deps}
}

// HandleScan handles POST /scan requests.
func (h *ScanHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	const op = "api.scan"
	var req decodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, wrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Scan(r.Context(), req.EventID, req.Text)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleOpenSession handles POST /scan/sessions requests.
func (h *ScanHandler) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.deps.OpenScanSession(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id})
}

// HandleDecode handles POST /scan/sessions/{id}/decode requests.
func (h *ScanHandler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	const op = "api.scan_decode"
	var req decodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, wrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.DeliverScan(r.Context(), r.PathValue("id"), req.EventID, req.Text)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleCloseSession handles DELETE /scan/sessions/{id} requests.
func (h *ScanHandler) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.CloseScanSession(r.Context(), r.PathValue("id")); err != nil {
		writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
