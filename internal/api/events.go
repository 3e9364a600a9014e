package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"eventscheduler/internal/cache"
	"eventscheduler/internal/domain"
	"eventscheduler/internal/ics"
	"eventscheduler/internal/store"
	ws "eventscheduler/internal/websocket"
)

type EventHandler struct {
	store *store.PostgresStore
	cache *cache.EventCache
	hub   *ws.Hub
}

func NewEventHandler(s *store.PostgresStore, c *cache.EventCache, hub *ws.Hub) *EventHandler {
	return &EventHandler{store: s, cache: c, hub: hub}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req store.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.store.CreateEvent(r.Context(), req)
	if err != nil {
		respondDomainError(w, err, "failed to create event")
		return
	}

	h.hub.Broadcast(ws.ScheduleChange{
		Type:      "event_created",
		EventID:   event.ID,
		Profiles:  event.Profiles,
		Timestamp: time.Now().UTC(),
	})

	// Creation responds in the author's own timezone.
	view, err := event.Project("")
	if err != nil {
		respondDomainError(w, err, "failed to render event")
		return
	}

	respondData(w, http.StatusCreated, view)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	displayZone := r.URL.Query().Get("timezone")
	profile := r.URL.Query().Get("profile")

	events, err := h.store.ListEvents(r.Context(), profile)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	views := make([]domain.EventView, 0, len(events))
	for i := range events {
		view, err := events[i].Project(displayZone)
		if err != nil {
			respondDomainError(w, projectionError(err, displayZone), "failed to render events")
			return
		}
		views = append(views, *view)
	}

	respondList(w, http.StatusOK, len(views), views)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	displayZone := r.URL.Query().Get("timezone")

	event := h.cache.Get(r.Context(), id)
	if event == nil {
		var err error
		event, err = h.store.GetEvent(r.Context(), id)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to get event")
			return
		}
		if event == nil {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		h.cache.Set(r.Context(), event)
	}

	view, err := event.Project(displayZone)
	if err != nil {
		respondDomainError(w, projectionError(err, displayZone), "failed to render event")
		return
	}

	respondData(w, http.StatusOK, view)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req store.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, changed, err := h.store.UpdateEvent(r.Context(), id, req)
	if err != nil {
		respondDomainError(w, err, "failed to update event")
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	h.cache.Invalidate(r.Context(), id)

	if len(changed) > 0 {
		h.hub.Broadcast(ws.ScheduleChange{
			Type:      "event_updated",
			EventID:   event.ID,
			Profiles:  event.Profiles,
			Fields:    changed,
			Timestamp: time.Now().UTC(),
		})
	}

	view, err := event.Project("")
	if err != nil {
		respondDomainError(w, err, "failed to render event")
		return
	}

	respondData(w, http.StatusOK, view)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.store.DeleteEvent(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	h.cache.Invalidate(r.Context(), id)
	h.hub.Broadcast(ws.ScheduleChange{
		Type:      "event_deleted",
		EventID:   id,
		Timestamp: time.Now().UTC(),
	})

	respondMessage(w, http.StatusOK, "Event deleted successfully")
}

// ExportICS renders matching events as an iCalendar feed.
func (h *EventHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")

	events, err := h.store.ListEvents(r.Context(), profile)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics.BuildCalendar(events)))
}

// projectionError turns a bad display-zone query parameter into a
// field-level validation error so it maps to 400, not 500.
func projectionError(err error, displayZone string) error {
	if displayZone != "" {
		return &domain.ValidationError{
			Field:   "timezone",
			Message: displayZone + " is not a valid timezone",
		}
	}
	return err
}
