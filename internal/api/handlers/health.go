package handlers

import (
	"net/http"
)

// HealthHandler provides a minimal liveness check reporting the active cache backend.
type HealthHandler struct {
	CacheBackend string
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok", "cache": h.CacheBackend}
	writeJSON(w, r, http.StatusOK, res)
}
