package api

import (
	"net/http"
)

// StatsProvider reports service counters.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves GET /stats.
type StatsHandler struct {
	stats StatsProvider
}

// NewStatsHandler creates a stats handler over p.
func NewStatsHandler(p StatsProvider) *StatsHandler {
	return &StatsHandler{stats: p}
}

// HandleStats writes roster size, open drafts and team count. A service that
// has not started answers 503 with the same body.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	stats := h.stats.GetStats()
	status := http.StatusOK
	if started, ok := stats["started"].(bool); ok && !started {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, stats)
}
