package api

import "net/http"

// handleStats recomputes the dashboard panel on every call so the UI
// reflects data changes between loads.
func handleStats(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Store == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "STORE_NOT_CONFIGURED", "store dependency is not configured", false, nil)
		return
	}

	stats, err := deps.Store.Stats(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "STATS_FAILED", "failed to compute store stats", true, map[string]any{"details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
