package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jmcalero-dev/Vectora/internal/config"
	"github.com/jmcalero-dev/Vectora/internal/core/attachment"
	db "github.com/jmcalero-dev/Vectora/internal/core/database"
	"github.com/jmcalero-dev/Vectora/internal/core/extract"
	"github.com/jmcalero-dev/Vectora/internal/core/llm"
	"github.com/jmcalero-dev/Vectora/internal/logging"
	"github.com/jmcalero-dev/Vectora/internal/worker"
)

// App wires the worker and its collaborators once at startup; nothing hangs
// off package-level globals.
type App struct {
	Store     *db.DatabaseClient
	Embedder  *llm.GeminiEmbedder
	Captioner *llm.GeminiCaptioner
	Worker    *worker.Worker
	Server    *Server

	logger *logging.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*App, error) {
	store, err := db.NewDatabaseClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	logger.Infow("database initialized")

	fetcher, err := attachment.NewFetcher(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init attachment fetcher: %w", err)
	}

	embedder, err := llm.NewGeminiEmbedder(ctx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}

	captioner, err := llm.NewGeminiCaptioner(ctx, cfg.AIAPIKey, cfg.CaptionModel)
	if err != nil {
		return nil, fmt.Errorf("init captioner: %w", err)
	}

	extractors := extract.NewSet(captioner, extract.Options{
		FrameInterval: cfg.FrameInterval,
		MaxFrames:     cfg.MaxFrames,
	}, logger.Named("extract"))

	w := worker.New(store, fetcher, extractors, embedder, worker.Config{
		BatchSize:    cfg.BatchSize,
		PollInterval: cfg.PollInterval,
		Cooldown:     cfg.Cooldown,
	}, logger.Named("worker"))

	server := NewServer(cfg, store, w, logger.Named("http"))

	return &App{
		Store:     store,
		Embedder:  embedder,
		Captioner: captioner,
		Worker:    w,
		Server:    server,
		logger:    logger,
	}, nil
}

// Run drives the worker loop and the status server until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Worker.Run(gctx)
	})
	g.Go(func() error {
		return a.Server.Run(gctx)
	})

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

func (a *App) Close() {
	if a.Embedder != nil {
		_ = a.Embedder.Close()
	}
	if a.Captioner != nil {
		_ = a.Captioner.Close()
	}
	if a.Store != nil {
		_ = a.Store.Close()
	}
}
