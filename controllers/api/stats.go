package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/grocerly/grocerly/models/stats"
)

// GetStats returns the latest aggregate usage snapshot (public)
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snap, err := stats.Get()
	if err != nil {
		if err == stats.ErrNoSnapshot {
			// aggregator has not run yet
			writeJSON(w, http.StatusOK, &stats.Snapshot{ByCategory: map[string]int{}})
			return
		}
		log.WithError(err).Error("Failed to load stats snapshot")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error fetching stats"})
		return
	}

	writeJSON(w, http.StatusOK, snap)
}
