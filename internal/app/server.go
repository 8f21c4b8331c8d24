package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmcalero-dev/Vectora/internal/config"
	"github.com/jmcalero-dev/Vectora/internal/core"
	"github.com/jmcalero-dev/Vectora/internal/logging"
	"github.com/jmcalero-dev/Vectora/internal/worker"
)

// Server exposes liveness and progress for the long-running worker.
type Server struct {
	httpServer *http.Server
	store      core.MessageStore
	worker     *worker.Worker
	logger     *logging.Logger
}

func NewServer(cfg *config.Config, store core.MessageStore, w *worker.Worker, logger *logging.Logger) *Server {
	s := &Server{store: store, worker: w, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/status", s.handleStatus)

	s.httpServer = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("status server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutCtx)
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statusResponse struct {
	Pending   int64        `json:"pending"`
	Processed int64        `json:"processed"`
	Worker    worker.Stats `json:"worker"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Worker: s.worker.Stats()}

	if n, err := s.store.CountPending(r.Context()); err == nil {
		resp.Pending = n
	} else {
		s.logger.Warnw("count pending failed", "error", err)
	}
	if n, err := s.store.CountProcessed(r.Context()); err == nil {
		resp.Processed = n
	} else {
		s.logger.Warnw("count processed failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
