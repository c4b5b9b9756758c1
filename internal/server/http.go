package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TensorKartDev/eva/internal/config"
	"github.com/TensorKartDev/eva/internal/session"
)

// HTTPServer provides monitoring endpoints for a running session.
type HTTPServer struct {
	server    *http.Server
	logger    *slog.Logger
	runner    *session.Runner
	startTime time.Time
}

// NewHTTPServer creates the monitoring server for the given session runner.
func NewHTTPServer(cfg config.HTTPConfig, logger *slog.Logger, runner *session.Runner) *HTTPServer {
	h := &HTTPServer{
		logger:    logger,
		runner:    runner,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/stats", h.handleStats)
	mux.Handle("/metrics", promhttp.Handler())

	h.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return h
}

// Start begins serving in a background goroutine.
func (h *HTTPServer) Start() error {
	h.logger.Info("HTTP monitoring server starting", slog.String("address", h.server.Addr))

	go func() {
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("HTTP server error", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (h *HTTPServer) Stop(ctx context.Context) error {
	h.logger.Info("HTTP monitoring server stopping")
	return h.server.Shutdown(ctx)
}

// handleHealth returns a basic liveness response.
func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// handleStats returns the session counters.
func (h *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, h.runner.Stats())
}

func (h *HTTPServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}
