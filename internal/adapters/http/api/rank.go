package api

import (
	"context"
	"net/http"

	"github.com/okian/swigup/internal/domain/types"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	SelfRank(ctx context.Context) (types.Entry, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank requests with the user's own leaderboard row.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	entry, err := h.deps.SelfRank(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
