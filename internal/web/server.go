// Package web serves the correction-submission endpoint and read APIs over
// the artifacts of the batch runs. The engine itself stays a scheduled
// batch job; this server only appends corrections and reads files.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/alkis-osm-coverage/internal/correction"
	"github.com/alkis-osm-coverage/internal/dataset"
	"github.com/alkis-osm-coverage/internal/web/handlers"
	"github.com/alkis-osm-coverage/internal/web/middleware"
)

// Server represents the web server.
type Server struct {
	config     *Config
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance. source may be nil when no
// database is available; the suggestion endpoint is then disabled.
func NewServer(config *Config, store *correction.Store, source dataset.Source) *Server {
	server := &Server{config: config}
	server.setupRoutes(store, source)

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      middleware.Logging(middleware.CORS(server.router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(store *correction.Store, source dataset.Source) {
	s.router = mux.NewRouter()

	correctionsHandler := &handlers.CorrectionsHandler{Store: store}
	statsHandler := &handlers.StatsHandler{
		OutputDir:   s.config.Data.OutputDir,
		HistoryPath: s.config.Data.HistoryPath,
		WindowDays:  s.config.Trend.WindowDays,
		TopK:        s.config.Trend.TopK,
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/save_correction", correctionsHandler.Save).Methods("POST", "OPTIONS")
	api.HandleFunc("/districts", statsHandler.Districts).Methods("GET")
	api.HandleFunc("/districts/{name}/geojson", statsHandler.GeoJSON).Methods("GET")
	api.HandleFunc("/history", statsHandler.History).Methods("GET")
	api.HandleFunc("/trends", statsHandler.Trends).Methods("GET")

	if source != nil {
		suggestHandler := &handlers.SuggestHandler{Source: source}
		api.HandleFunc("/suggest", suggestHandler.Suggest).Methods("GET")
	}
}

// Router exposes the configured routes, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
