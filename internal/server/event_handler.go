package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/filter"
	"github.com/ArseniiKunilovskii/reminder/internal/models"
	"github.com/ArseniiKunilovskii/reminder/internal/service"
	"github.com/ArseniiKunilovskii/reminder/internal/store"
)

const dateLayout = "2006-01-02"

// EventHandler handles HTTP requests for event CRUD and filtered views.
type EventHandler struct {
	agenda *service.Agenda
	log    *zerolog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(agenda *service.Agenda, log *zerolog.Logger) *EventHandler {
	return &EventHandler{
		agenda: agenda,
		log:    log,
	}
}

// CreateEvent handles the creation of a new event
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, `{"status":"error","message":"Invalid request body"}`, http.StatusBadRequest)
		return
	}

	id, err := h.agenda.AddEvent(&req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create event")
		if errors.Is(err, models.ErrInvalidEvent) {
			http.Error(w, `{"status":"error","message":"`+err.Error()+`"}`, http.StatusBadRequest)
		} else {
			http.Error(w, `{"status":"error","message":"Failed to create event"}`, http.StatusInternalServerError)
		}
		return
	}

	event, err := h.agenda.GetEvent(id)
	if err != nil {
		http.Error(w, `{"status":"error","message":"Failed to create event"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"event":  event,
	})
}

// GetEvent retrieves an event by ID
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, `{"status":"error","message":"Invalid event ID format"}`, http.StatusBadRequest)
		return
	}

	event, err := h.agenda.GetEvent(id)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			http.Error(w, `{"status":"error","message":"Event not found"}`, http.StatusNotFound)
		} else {
			h.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to get event")
			http.Error(w, `{"status":"error","message":"Failed to get event"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"event":  event,
	})
}

// UpdateEvent updates an existing event
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, `{"status":"error","message":"Invalid event ID format"}`, http.StatusBadRequest)
		return
	}

	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, `{"status":"error","message":"Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := h.agenda.UpdateEvent(id, &req); err != nil {
		switch {
		case errors.Is(err, store.ErrEventNotFound):
			http.Error(w, `{"status":"error","message":"Event not found"}`, http.StatusNotFound)
		case errors.Is(err, models.ErrInvalidEvent):
			http.Error(w, `{"status":"error","message":"`+err.Error()+`"}`, http.StatusBadRequest)
		default:
			h.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to update event")
			http.Error(w, `{"status":"error","message":"Failed to update event"}`, http.StatusInternalServerError)
		}
		return
	}

	event, _ := h.agenda.GetEvent(id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"event":  event,
	})
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, `{"status":"error","message":"Invalid event ID format"}`, http.StatusBadRequest)
		return
	}

	if err := h.agenda.DeleteEvent(id); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			http.Error(w, `{"status":"error","message":"Event not found"}`, http.StatusNotFound)
		} else {
			h.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to delete event")
			http.Error(w, `{"status":"error","message":"Failed to delete event"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
	})
}

// ListEvents returns the filtered, time-sorted view. Criteria come from
// query parameters: search, start_date, end_date (2006-01-02) and
// show_past (default true).
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := filter.Criteria{
		Search:   q.Get("search"),
		ShowPast: q.Get("show_past") != "false",
	}
	if v := q.Get("start_date"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			http.Error(w, `{"status":"error","message":"Invalid start_date"}`, http.StatusBadRequest)
			return
		}
		criteria.StartDate = t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			http.Error(w, `{"status":"error","message":"Invalid end_date"}`, http.StatusBadRequest)
			return
		}
		criteria.EndDate = t
	}

	events := h.agenda.ListFiltered(criteria)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"events": events,
		"count":  len(events),
	})
}

// ListAllEvents returns every stored event in insertion order.
func (h *EventHandler) ListAllEvents(w http.ResponseWriter, r *http.Request) {
	events := h.agenda.ListAll()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"events": events,
		"count":  len(events),
	})
}
