package api

import (
	"net/http"
)

// handleHealthz reports liveness and database reachability.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.dbHealth != nil {
		if err := h.dbHealth(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "degraded",
				"database": "unreachable",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
