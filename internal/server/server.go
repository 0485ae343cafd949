// Package server exposes the puzzle engine over a small HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"finaltrace/internal/config"
	"finaltrace/internal/engine"
	"finaltrace/internal/logging"
	"finaltrace/internal/puzzle"
)

// Server serves the puzzle API: a status index, per-puzzle metadata,
// solve attempts, and store statistics.
type Server struct {
	cfg    *config.Config
	engine *engine.Engine
}

// New creates a server over the given engine.
func New(cfg *config.Config, eng *engine.Engine) *Server {
	return &Server{cfg: cfg, engine: eng}
}

// Handler builds the route table. Exposed separately so tests can drive it
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /puzzle/{name}", s.handleDescribe)
	mux.HandleFunc("POST /puzzle/{name}/solve", s.handleSolve)
	mux.HandleFunc("GET /stats", s.handleStats)
	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:        s.cfg.Server.Addr,
		Handler:     s.Handler(),
		ReadTimeout: s.cfg.Server.ReadTimeoutDuration(),
	}

	errChan := make(chan error, 1)
	go func() {
		logging.Server("Listening on %s", s.cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		logging.Server("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeoutDuration())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}

type statusResponse struct {
	Status  string   `json:"status"`
	Puzzles []string `json:"puzzles"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  s.cfg.Name,
		Puzzles: s.engine.List(),
	})
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	desc, err := s.engine.Describe(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown puzzle")
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// solveRequest carries the answer payload. Numbers become int answers;
// strings go through the same coercion the CLI uses.
type solveRequest struct {
	Answer any `json:"answer"`
}

type solveResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !s.engine.Has(name) {
		writeError(w, http.StatusNotFound, "unknown puzzle")
		return
	}

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	answer, err := coerceAnswer(req.Answer)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logging.ServerDebug("Solve request: puzzle=%s answer=%s", name, answer)

	res, err := s.engine.Attempt(r.Context(), name, answer)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{OK: res.Solved, Message: res.Message})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Get(logging.CategoryServer).Error("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// coerceAnswer maps a decoded JSON answer value onto a puzzle answer.
// JSON numbers arrive as float64; only integral values are accepted.
func coerceAnswer(v any) (puzzle.Answer, error) {
	switch val := v.(type) {
	case nil:
		return puzzle.Answer{}, nil
	case float64:
		if val != float64(int(val)) {
			return puzzle.Answer{}, fmt.Errorf("answer must be an integer or string")
		}
		return puzzle.IntAnswer(int(val)), nil
	case string:
		return puzzle.ParseAnswer(val), nil
	default:
		return puzzle.Answer{}, fmt.Errorf("answer must be an integer or string")
	}
}
