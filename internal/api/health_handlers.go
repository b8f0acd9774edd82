package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

type healthResponse struct {
	Status          string                 `json:"status"`
	Summary         models.StudySummary    `json:"summary"`
	Inconsistencies []models.Inconsistency `json:"inconsistencies"`
}

// handleHealth reports liveness plus any broken invariants in the card graph.
// Inconsistencies mark the store as degraded but still return 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:          "ok",
		Summary:         s.Store.Summary(),
		Inconsistencies: s.Store.CheckConsistency(),
	}
	if len(resp.Inconsistencies) > 0 {
		resp.Status = "degraded"
		logger.FromContext(r.Context()).Warn("store has %d inconsistencies", len(resp.Inconsistencies))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Store.Summary())
}
