package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/engine"
)

const defaultLeaderboardLimit = 10

// OpsServer serves the operational HTTP surface: liveness, Prometheus
// metrics, and read-only game aggregates. It implements Service.
type OpsServer struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewOpsServer builds the ops HTTP server on addr. metricsHandler serves
// /metrics; pass nil to omit the route.
//
// Precondition: eng and logger must be non-nil.
func NewOpsServer(addr string, eng *engine.Engine, metricsHandler http.Handler, logger *zap.Logger) *OpsServer {
	r := mux.NewRouter()
	o := &OpsServer{
		srv: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}

	r.HandleFunc("/healthz", o.handleHealthz).Methods(http.MethodGet)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
	r.HandleFunc("/leaderboard", o.handleLeaderboard(eng)).Methods(http.MethodGet)
	r.HandleFunc("/stats", o.handleStats(eng)).Methods(http.MethodGet)

	return o
}

// Start runs the HTTP listener and blocks until Stop is called or the
// listener fails.
func (o *OpsServer) Start() error {
	o.logger.Info("ops server listening", zap.String("addr", o.srv.Addr))
	if err := o.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the listener down gracefully.
func (o *OpsServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.srv.Shutdown(ctx); err != nil {
		o.logger.Warn("ops server shutdown", zap.Error(err))
	}
}

// Handler exposes the router for tests.
func (o *OpsServer) Handler() http.Handler {
	return o.srv.Handler
}

func (o *OpsServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	o.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (o *OpsServer) handleLeaderboard(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		limit := defaultLeaderboardLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				o.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}

		entries, err := eng.Leaderboard(r.Context(), category, limit)
		if err != nil {
			o.logger.Error("leaderboard query failed", zap.Error(err))
			o.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		o.writeJSON(w, http.StatusOK, map[string]any{
			"category": category,
			"entries":  entries,
		})
	}
}

func (o *OpsServer) handleStats(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := eng.Stats(r.Context())
		if err != nil {
			o.logger.Error("stats query failed", zap.Error(err))
			o.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		o.writeJSON(w, http.StatusOK, stats)
	}
}

func (o *OpsServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		o.logger.Warn("encoding response", zap.Error(err))
	}
}
