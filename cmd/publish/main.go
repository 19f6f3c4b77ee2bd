package main

import (
	"context"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"

	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/drive"
	"github.com/gdg-fisk/content-pipeline/internal/extract"
	"github.com/gdg-fisk/content-pipeline/internal/media"
	"github.com/gdg-fisk/content-pipeline/internal/pages"
	"github.com/gdg-fisk/content-pipeline/internal/pipeline"
	"github.com/gdg-fisk/content-pipeline/internal/tagger"
)

// publish runs one document through the pipeline from the command line:
//
//	publish <projects|codelabs> "<file name>"
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 3 {
		logger.Error("usage: publish <projects|codelabs> <file name>")
		os.Exit(2)
	}
	kind := pipeline.Kind(os.Args[1])
	fileName := os.Args[2]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.RunTimeout)
	defer cancel()

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
		media.NewExternalizer(media.NewGCSUploader(storageClient, cfg.Storage.Bucket, logger), logger),
		extract.NewExtractor(model, logger),
		store,
		pipeline.Targets(cfg.Drive),
		cfg.Pipeline.StageTimeout,
		logger,
	)

	res, err := publisher.Publish(ctx, pipeline.Request{Kind: kind, FileName: fileName})
	if err != nil {
		logger.Error("publish failed", "kind", kind, "file", fileName, "error", err)
		os.Exit(1)
	}
	logger.Info("published", "file", fileName, "tag", res.Tag, "doc", res.Doc, "images", len(res.ImageRefs))
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
