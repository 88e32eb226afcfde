package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/service"
)

// Server exposes the agenda facade over HTTP for out-of-process
// collaborators.
type Server struct {
	Server   *http.Server
	log      *zerolog.Logger
	eventAPI *EventHandler
	storeAPI *StoreHandler
}

func New(addr string, agenda *service.Agenda, log *zerolog.Logger) *Server {
	s := &Server{
		Server: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log:      log,
		eventAPI: NewEventHandler(agenda, log),
		storeAPI: NewStoreHandler(agenda, log),
	}

	r := mux.NewRouter()
	s.setupRoutes(r)
	s.Server.Handler = cors.Default().Handler(r)

	return s
}

func (s *Server) setupRoutes(r *mux.Router) {
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/health", s.healthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Events routes
	events := api.PathPrefix("/events").Subrouter()
	events.HandleFunc("", s.eventAPI.ListEvents).Methods("GET")
	events.HandleFunc("", s.eventAPI.CreateEvent).Methods("POST")
	events.HandleFunc("/all", s.eventAPI.ListAllEvents).Methods("GET")
	events.HandleFunc("/{id}", s.eventAPI.GetEvent).Methods("GET")
	events.HandleFunc("/{id}", s.eventAPI.UpdateEvent).Methods("PUT")
	events.HandleFunc("/{id}", s.eventAPI.DeleteEvent).Methods("DELETE")

	// Store routes
	storeR := api.PathPrefix("/store").Subrouter()
	storeR.HandleFunc("/save", s.storeAPI.Save).Methods("POST")
	storeR.HandleFunc("/load", s.storeAPI.Load).Methods("POST")
	storeR.HandleFunc("/export", s.storeAPI.ExportCSV).Methods("POST")
	storeR.HandleFunc("/import", s.storeAPI.ImportCSV).Methods("POST")

	// Display month cursor
	api.HandleFunc("/display-month", s.storeAPI.GetDisplayMonth).Methods("GET")
	api.HandleFunc("/display-month", s.storeAPI.SetDisplayMonth).Methods("PUT")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("address", s.Server.Addr).Msg("Starting server")
	return s.Server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info().Msg("Shutting down server")
	return s.Server.Shutdown(ctx)
}

// loggingMiddleware logs all incoming requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{w, http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Str("duration", duration.String()).
			Msg("Request processed")
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
