// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies; every payload here is a handful of fields.
const maxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the session implementation.
type Dependencies interface {
	ProfileDependencies
	IntakeDependencies
	ScanDependencies
	LeaderboardDependencies
	RankDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	profileHandler     *ProfileHandler
	intakeHandler      *IntakeHandler
	scanHandler        *ScanHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		profileHandler:     NewProfileHandler(deps),
		intakeHandler:      NewIntakeHandler(deps),
		scanHandler:        NewScanHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		rankHandler:        NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /profile", MetricsMiddleware(s.profileHandler.HandleGetProfile, "profile"))
	mux.HandleFunc("POST /profile", MetricsMiddleware(s.profileHandler.HandleOnboard, "profile"))

	mux.HandleFunc("GET /hydration", MetricsMiddleware(s.intakeHandler.HandleGetHydration, "hydration"))
	mux.HandleFunc("POST /intake", MetricsMiddleware(s.intakeHandler.HandlePostIntake, "intake"))
	mux.HandleFunc("GET /intake/presets", MetricsMiddleware(s.intakeHandler.HandleGetPresets, "presets"))
	mux.HandleFunc("POST /period", MetricsMiddleware(s.intakeHandler.HandleNewPeriod, "period"))

	mux.HandleFunc("POST /scan", MetricsMiddleware(s.scanHandler.HandleScan, "scan"))
	mux.HandleFunc("POST /scan/sessions", MetricsMiddleware(s.scanHandler.HandleOpenSession, "scan_sessions"))
	mux.HandleFunc("POST /scan/sessions/{id}/decode", MetricsMiddleware(s.scanHandler.HandleDecode, "scan_decode"))
	mux.HandleFunc("DELETE /scan/sessions/{id}", MetricsMiddleware(s.scanHandler.HandleCloseSession, "scan_sessions"))

	mux.HandleFunc("GET /leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("GET /rank", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure writes err with the status its kind maps to.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// decodeJSON reads a single JSON object from the request body into v. An
// empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
