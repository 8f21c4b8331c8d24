// Package worker drives the vectorization pipeline: it polls the message
// store for records whose embedding is still null, runs resolve -> extract ->
// assemble -> embed for each, and persists the vector. One worker instance is
// assumed; there is no per-record lease, so running two instances can
// double-process the same pending rows.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalero-dev/Vectora/internal/core"
	"github.com/jmcalero-dev/Vectora/internal/core/attachment"
	"github.com/jmcalero-dev/Vectora/internal/core/extract"
	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// ExtractorSet dispatches attachment bytes to the extractor for a kind.
type ExtractorSet interface {
	Extract(ctx context.Context, kind attachment.Kind, data []byte) extract.Fragment
}

// Config carries the loop tuning knobs.
type Config struct {
	BatchSize    int
	PollInterval time.Duration
	Cooldown     time.Duration
}

// Stats is a snapshot of worker progress for the status endpoint.
type Stats struct {
	LastCycleAt        time.Time `json:"last_cycle_at"`
	LastCycleProcessed int       `json:"last_cycle_processed"`
	LastCycleFailed    int       `json:"last_cycle_failed"`
	TotalProcessed     int64     `json:"total_processed"`
	TotalCycles        int64     `json:"total_cycles"`
}

type Worker struct {
	store      core.MessageStore
	fetcher    core.AttachmentFetcher
	extractors ExtractorSet
	embedder   core.Embedder
	cfg        Config
	logger     *logging.Logger

	mu    sync.Mutex
	stats Stats
}

func New(store core.MessageStore, fetcher core.AttachmentFetcher, extractors ExtractorSet, embedder core.Embedder, cfg Config, logger *logging.Logger) *Worker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 60 * time.Second
	}
	return &Worker{
		store:      store,
		fetcher:    fetcher,
		extractors: extractors,
		embedder:   embedder,
		cfg:        cfg,
		logger:     logger,
	}
}

// Run polls until ctx is cancelled. A failed cycle sleeps the longer cooldown
// interval instead of the steady-state poll interval, so a systemic outage
// does not turn into a tight retry loop. The stop signal only prevents the
// next cycle; in-flight work is not aborted mid-record.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Infow("worker started",
		"batch_size", w.cfg.BatchSize,
		"poll_interval", w.cfg.PollInterval,
		"cooldown", w.cfg.Cooldown,
	)

	for {
		if err := ctx.Err(); err != nil {
			w.logger.Infow("worker stopping")
			return err
		}

		pause := w.cfg.PollInterval
		if err := w.runCycle(ctx); err != nil {
			if ctx.Err() != nil {
				w.logger.Infow("worker stopping")
				return ctx.Err()
			}
			w.logger.Errorw("cycle failed, cooling down", "error", err)
			pause = w.cfg.Cooldown
		}

		if err := sleepCtx(ctx, pause); err != nil {
			w.logger.Infow("worker stopping")
			return err
		}
	}
}

// runCycle processes one bounded batch, oldest first, strictly sequentially.
// Per-record failures are logged and skipped; the record stays pending and is
// picked up again next cycle. Panics anywhere in the cycle surface as an
// error so the loop applies the cooldown instead of crashing.
func (w *Worker) runCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panic: %v", r)
		}
	}()

	cycleID := uuid.NewString()[:8]
	log := w.logger.With("cycle", cycleID)

	msgs, err := w.store.SelectPending(ctx, w.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("select pending: %w", err)
	}
	if len(msgs) == 0 {
		log.Debugw("no pending messages")
		w.recordCycle(0, 0)
		return nil
	}

	log.Infow("cycle started", "pending", len(msgs))

	var processed, failed int
	for i := range msgs {
		if ctx.Err() != nil {
			break
		}
		msg := &msgs[i]
		if err := w.processOne(ctx, msg); err != nil {
			failed++
			log.Warnw("message left pending for retry", "message_id", msg.ID, "error", err)
			continue
		}
		processed++
	}

	log.Infow("cycle finished", "processed", processed, "failed", failed)
	w.recordCycle(processed, failed)
	return nil
}

func (w *Worker) recordCycle(processed, failed int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.LastCycleAt = time.Now()
	w.stats.LastCycleProcessed = processed
	w.stats.LastCycleFailed = failed
	w.stats.TotalProcessed += int64(processed)
	w.stats.TotalCycles++
}

// Stats returns a copy of the current progress counters.
func (w *Worker) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
