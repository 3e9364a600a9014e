package api

import (
	"net/http"

	"eventscheduler/internal/store"
	ws "eventscheduler/internal/websocket"
)

type StatsHandler struct {
	store *store.PostgresStore
	hub   *ws.Hub
}

func NewStatsHandler(s *store.PostgresStore, hub *ws.Hub) *StatsHandler {
	return &StatsHandler{store: s, hub: hub}
}

// Stats returns collection sizes and live-client counts for the dashboard.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	totalEvents, err := h.store.CountEvents(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	totalUsers, err := h.store.CountUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	type statsResponse struct {
		TotalEvents      int `json:"total_events"`
		TotalUsers       int `json:"total_users"`
		WebSocketClients int `json:"websocket_clients"`
	}

	respondData(w, http.StatusOK, statsResponse{
		TotalEvents:      totalEvents,
		TotalUsers:       totalUsers,
		WebSocketClients: h.hub.ClientCount(),
	})
}
