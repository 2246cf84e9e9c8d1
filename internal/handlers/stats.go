package handlers

import (
	"context"

	"github.com/serroba/rategate/internal/stats"
)

// StatsResponse is the response for the limiter stats endpoint.
type StatsResponse struct {
	Body struct {
		Clients map[string]stats.Counters `doc:"Allow/deny counters per client key" json:"clients"`
	}
}

// StatsHandler exposes the accumulated allow/deny counters.
type StatsHandler struct {
	store stats.Store
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(store stats.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Snapshot returns the per-client decision counters.
func (h *StatsHandler) Snapshot(ctx context.Context, _ *struct{}) (*StatsResponse, error) {
	snapshot, err := h.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{}
	resp.Body.Clients = snapshot

	return resp, nil
}
