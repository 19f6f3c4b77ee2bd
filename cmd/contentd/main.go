package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"

	"github.com/gdg-fisk/content-pipeline/internal/async"
	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/drive"
	"github.com/gdg-fisk/content-pipeline/internal/export"
	"github.com/gdg-fisk/content-pipeline/internal/extract"
	"github.com/gdg-fisk/content-pipeline/internal/media"
	"github.com/gdg-fisk/content-pipeline/internal/pages"
	"github.com/gdg-fisk/content-pipeline/internal/pipeline"
	"github.com/gdg-fisk/content-pipeline/internal/server"
	"github.com/gdg-fisk/content-pipeline/internal/tagger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openPagesBackend(ctx, cfg)
	if err != nil {
		logger.Error("open pages backend", "error", err)
		os.Exit(1)
	}
	store, err := pages.NewStore(ctx, backend, pages.DefaultCatalog(), logger)
	if err != nil {
		logger.Error("bootstrap page store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		logger.Error("open object storage", "error", err)
		os.Exit(1)
	}
	defer storageClient.Close()
	uploader := media.NewGCSUploader(storageClient, cfg.Storage.Bucket, logger)

	repo, err := drive.NewGoogleRepository(ctx, cfg.Drive.CredentialsFile, logger)
	if err != nil {
		logger.Error("open document repository", "error", err)
		os.Exit(1)
	}

	model := extract.NewGeminiClient(cfg.Model.APIKey,
		extract.WithGeminiModel(cfg.Model.Name),
		extract.WithGeminiTimeout(cfg.Model.Timeout),
	)

	publisher := pipeline.NewPublisher(
		repo,
		tagger.New(logger),
		media.NewExternalizer(uploader, logger),
		extract.NewExtractor(model, logger),
		store,
		pipeline.Targets(cfg.Drive),
		cfg.Pipeline.StageTimeout,
		logger,
	)

	queue := async.NewPublishQueue(publisher, logger,
		async.WithWorkers(cfg.Pipeline.Workers),
		async.WithQueueSize(cfg.Pipeline.QueueSize),
		async.WithRunTimeout(cfg.Pipeline.RunTimeout),
	)

	exporter := export.NewService(store, logger)

	router := server.NewRouter(server.NewHandler(queue, store, exporter, logger))
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}

func openPagesBackend(ctx context.Context, cfg *common.Config) (pages.Backend, error) {
	switch cfg.Pages.Backend {
	case "sqlite":
		return pages.OpenSQLite(cfg.Pages.SQLitePath)
	default:
		client, err := firestore.NewClient(ctx, cfg.Pages.ProjectID)
		if err != nil {
			return nil, err
		}
		return pages.NewFirestoreBackend(client, cfg.Pages.Collection), nil
	}
}
