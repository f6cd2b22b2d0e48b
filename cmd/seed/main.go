package main

// Rebuilds the checkpoint from the built-in default catalog. Existing state
// under the configured key is overwritten, so this is for bootstrapping fresh
// deployments and local resets.

import (
	"context"
	"flag"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"libraryapi/internal/config"
	"libraryapi/internal/database"
	"libraryapi/internal/repository/memory"
	"libraryapi/internal/seed"
	"libraryapi/internal/service"
	"libraryapi/internal/storage"
	storagepg "libraryapi/internal/storage/postgres"
)

func main() {
	backend := flag.String("backend", "", "checkpoint backend to write (defaults to CHECKPOINT_BACKEND)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if *backend != "" {
		cfg.Checkpoint.Backend = *backend
	}
	ctx := context.Background()

	var snaps storage.Snapshotter
	switch cfg.Checkpoint.Backend {
	case "file":
		snaps, err = storage.NewFile(cfg.Checkpoint.Dir)
	case "minio":
		snaps, err = storage.NewMinIO(cfg.MinIO)
	case "postgres":
		db, dbErr := database.NewPostgres(cfg.Database)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()
		pg := storagepg.New(db)
		if err = pg.EnsureSchema(ctx); err == nil {
			snaps = pg
		}
	default:
		logger.Fatal("unknown checkpoint backend", zap.String("backend", cfg.Checkpoint.Backend))
	}
	if err != nil {
		logger.Fatal("failed to initialize checkpoint backend", zap.Error(err))
	}

	inv := memory.NewInventoryStore()
	hist := memory.NewHistoryLog()
	checkpoint := service.NewCheckpointService(inv, hist, snaps, cfg.Checkpoint.Key, logger)
	ledger := service.NewLedgerService(inv, hist, nil, logger)

	n := 0
	for _, e := range seed.Catalog() {
		author := e.Author
		if author == "" {
			author = "Author unspecified"
		}
		if _, err := ledger.AddTitle(ctx, service.AddTitleInput{
			Title:     e.Title,
			Author:    author,
			Category:  e.Category,
			CopyCount: e.Copies,
		}); err != nil {
			logger.Warn("skipping title", zap.String("title", e.Title), zap.Error(err))
			continue
		}
		n++
	}

	if err := checkpoint.SaveNow(ctx); err != nil {
		logger.Fatal("failed to write checkpoint", zap.Error(err))
	}
	logger.Info("checkpoint written",
		zap.String("backend", cfg.Checkpoint.Backend),
		zap.String("key", cfg.Checkpoint.Key),
		zap.Int("titles", n),
	)
}
