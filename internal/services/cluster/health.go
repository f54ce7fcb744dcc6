package cluster

import (
	"encoding/json"
	"net/http"
)

// HealthStats is the snapshot reported by the /health endpoint.
type HealthStats struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// StatsFunc supplies the current session count for health reporting.
type StatsFunc func() int

// NewHealthHandler returns the liveness endpoint Consul polls. It always
// reports healthy while the process responds; the session count is
// informational.
func NewHealthHandler(stats StatsFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthStats{Status: "healthy"}
		if stats != nil {
			resp.Sessions = stats()
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
