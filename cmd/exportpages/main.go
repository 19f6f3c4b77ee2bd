package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/export"
	"github.com/gdg-fisk/content-pipeline/internal/pages"
)

// exportpages writes an XLSX snapshot of every page document:
//
//	exportpages [output.xlsx]
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	out := "pages.xlsx"
	if len(os.Args) >= 2 {
		out = os.Args[1]
	}

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
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

	data, err := export.NewService(store, logger).ExportPagesXLSX(ctx)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		logger.Error("write workbook", "path", out, "error", err)
		os.Exit(1)
	}
	logger.Info("wrote workbook", "path", out, "bytes", len(data))
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
