package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"weather-dashboard/dashboard"
	"weather-dashboard/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server represents the dashboard's HTTP server
type Server struct {
	store  *dashboard.Store
	opts   view.Options
	router chi.Router
	server *http.Server
}

// NewServer creates a new server for store listening on port
func NewServer(store *dashboard.Store, opts view.Options, port int) *Server {
	s := &Server{
		store: store,
		opts:  opts,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleGetDashboard)
		r.Get("/state", s.handleGetState)
		r.Post("/location", s.handleSelectLocation)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/health", s.handleHealthCheck)
	})

	s.router = r
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving; it returns http.ErrServerClosed after Shutdown
func (s *Server) Start() error {
	log.Printf("Starting dashboard server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for active ones to finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handlePage renders the HTML dashboard. A non-empty ?q= selects that
// location and redirects back to the plain page, which then shows the
// loading skeleton until the fetch settles.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		s.store.Select(q)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	d := view.Build(s.store.Snapshot(), s.opts)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := view.RenderHTML(w, d); err != nil {
		log.Printf("Error rendering dashboard: %v", err)
	}
}

// handleGetDashboard returns the display model for the current snapshot
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.Build(s.store.Snapshot(), s.opts))
}

// handleGetState returns the raw store snapshot including the provider response
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type selectRequest struct {
	Location string `json:"location"`
}

// handleSelectLocation starts a fetch for the posted location
func (s *Server) handleSelectLocation(w http.ResponseWriter, r *http.Request) {
	var req selectRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
	} else {
		req.Location = r.FormValue("location")
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		writeError(w, http.StatusBadRequest, "Location not specified")
		return
	}

	seq := s.store.Select(location)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"seq":      seq,
		"location": location,
		"status":   dashboard.StatusLoading,
	})
}

// handleRefresh refetches the current location
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	seq, ok := s.store.Refresh()
	if !ok {
		writeError(w, http.StatusConflict, "No location selected")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"seq":      seq,
		"location": s.store.Snapshot().Location,
		"status":   dashboard.StatusLoading,
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
