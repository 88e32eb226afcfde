package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/service"
)

// StoreHandler handles persistence, CSV interchange and the display
// month cursor.
type StoreHandler struct {
	agenda *service.Agenda
	log    *zerolog.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(agenda *service.Agenda, log *zerolog.Logger) *StoreHandler {
	return &StoreHandler{
		agenda: agenda,
		log:    log,
	}
}

type pathRequest struct {
	Path string `json:"path"`
}

type monthRequest struct {
	Month string `json:"month"` // 2006-01-02, any day of the wanted month
}

// Save persists the store to its database file.
func (h *StoreHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.agenda.Save(); err != nil {
		http.Error(w, `{"status":"error","message":"Failed to save events"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
	})
}

// Load replaces the in-memory store with the persisted snapshot. A
// decode failure keeps the current events and reports the error.
func (h *StoreHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.agenda.Load(); err != nil {
		http.Error(w, `{"status":"error","message":"Failed to load events, current state kept"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"count":  len(h.agenda.ListAll()),
	})
}

// ExportCSV writes all events to the CSV file named in the body.
func (h *StoreHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		http.Error(w, `{"status":"error","message":"Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := h.agenda.ExportCSV(req.Path); err != nil {
		http.Error(w, `{"status":"error","message":"Failed to export CSV"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
	})
}

// ImportCSV appends events from the CSV file named in the body and
// reports how many were imported. Bad lines are skipped, not errors.
func (h *StoreHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		http.Error(w, `{"status":"error","message":"Invalid request body"}`, http.StatusBadRequest)
		return
	}

	imported, err := h.agenda.ImportCSV(req.Path)
	if err != nil {
		http.Error(w, `{"status":"error","message":"Failed to import CSV"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "success",
		"imported": imported,
	})
}

// GetDisplayMonth returns the calendar cursor.
func (h *StoreHandler) GetDisplayMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "success",
		"display_month": h.agenda.DisplayMonth().Format(dateLayout),
	})
}

// SetDisplayMonth moves the calendar cursor to the month of the given date.
func (h *StoreHandler) SetDisplayMonth(w http.ResponseWriter, r *http.Request) {
	var req monthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"status":"error","message":"Invalid request body"}`, http.StatusBadRequest)
		return
	}

	t, err := time.ParseInLocation(dateLayout, req.Month, time.Local)
	if err != nil {
		http.Error(w, `{"status":"error","message":"Invalid month date"}`, http.StatusBadRequest)
		return
	}
	h.agenda.SetDisplayMonth(t)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "success",
		"display_month": h.agenda.DisplayMonth().Format(dateLayout),
	})
}
