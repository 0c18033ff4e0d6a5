// Package server answers word lookups over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/milden6/flatdawg"
	"github.com/milden6/flatdawg/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// LookupResponse is the body of a word lookup.
type LookupResponse struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
}

// Server serves lookups against a graph that can be replaced while running.
type Server struct {
	graph   atomic.Pointer[flatdawg.Graph]
	metrics *metrics.Metrics
	log     zerolog.Logger
	router  *mux.Router
}

// New creates a Server for g. m may be nil, in which case /metrics is not
// registered.
func New(g *flatdawg.Graph, m *metrics.Metrics, log zerolog.Logger) *Server {
	s := &Server{metrics: m, log: log}
	s.graph.Store(g)

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/v1/words/{word}", s.lookup).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	if m != nil {
		r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Swap replaces the graph served by later requests.
func (s *Server) Swap(g *flatdawg.Graph) {
	s.graph.Store(g)
	s.log.Info().Int("edges", g.NumEdges()).Msg("Graph swapped")
}

// Graph returns the graph currently served.
func (s *Server) Graph() *flatdawg.Graph {
	return s.graph.Load()
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("Server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	found := s.graph.Load().ContainsWord(word)
	if s.metrics != nil {
		s.metrics.Lookup(found)
	}
	s.respond(w, http.StatusOK, LookupResponse{Word: word, Found: found})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]any{
		"status": "ok",
		"edges":  s.graph.Load().NumEdges(),
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn().Err(err).Msg("Failed to write response")
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("Request")
	})
}
