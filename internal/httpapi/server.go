// Package httpapi serves share links over HTTP so a browser or chat preview
// can resolve a pigmento:// payload to its color.
//
// Routes:
//   - GET /health
//   - GET /guess/{payload}    decode a share payload
//   - GET /resolve?link=...   parse a full pigmento:// link
//   - GET /v1/stats           aggregated play statistics
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/deeplink"
	"github.com/vovakirdan/pigmento/internal/storage"
)

// StatsSource provides the numbers behind /v1/stats.
// *storage.Store satisfies it.
type StatsSource interface {
	AllStats() (*storage.Stats, error)
}

// Server bundles the router and its dependencies.
type Server struct {
	r      *chi.Mux
	stats  StatsSource
	logger *log.Logger
}

// ColorResponse describes a resolved share payload.
type ColorResponse struct {
	Hex     string `json:"hex"`  // Canonical form used in links
	Hex6    string `json:"hex6"` // Full bytes, for CSS
	Levels  [3]int `json:"levels"`
	Link    string `json:"link"`
	Payload string `json:"payload"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// New constructs a Server. stats may be nil, in which case /v1/stats
// answers 503.
func New(stats StatsSource, logger *log.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), stats: stats, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/guess/{payload}", s.handleGuess)
	s.r.Get("/resolve", s.handleResolve)
	s.r.Get("/v1/stats", s.handleStats)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Detail: r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	payload := chi.URLParam(r, "payload")
	c, err := deeplink.Decode(payload)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed_link", Detail: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, colorResponse(c))
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if link == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing_link"})
		return
	}
	c, err := deeplink.Parse(link)
	switch {
	case errors.Is(err, deeplink.ErrNotPigmento):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "not_pigmento", Detail: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed_link", Detail: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, colorResponse(c))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "stats_unavailable"})
		return
	}
	stats, err := s.stats.AllStats()
	if err != nil {
		s.logger.Error("failed to load stats", "error", err, "request_id", chimw.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "stats_failed"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func colorResponse(c color.Color) ColorResponse {
	return ColorResponse{
		Hex:     c.Canonical(),
		Hex6:    c.Hex6(),
		Levels:  c.Levels(),
		Link:    deeplink.Build(c),
		Payload: deeplink.Encode(c),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
