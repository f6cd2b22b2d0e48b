package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"libraryapi/internal/config"
	"libraryapi/internal/database"
	handlers "libraryapi/internal/http/handler"
	"libraryapi/internal/http/middleware"
	"libraryapi/internal/otel"
	"libraryapi/internal/repository/memory"
	"libraryapi/internal/seed"
	"libraryapi/internal/service"
	"libraryapi/internal/storage"
	storagepg "libraryapi/internal/storage/postgres"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	snaps, db, err := newSnapshotter(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize checkpoint backend",
			zap.String("backend", cfg.Checkpoint.Backend), zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	// The in-memory stores are authoritative; the snapshotter only
	// checkpoints them across restarts.
	inv := memory.NewInventoryStore()
	hist := memory.NewHistoryLog()
	checkpoint := service.NewCheckpointService(inv, hist, snaps, cfg.Checkpoint.Key, logger)

	restored, err := checkpoint.Restore(ctx)
	if err != nil {
		logger.Fatal("failed to restore checkpoint", zap.Error(err))
	}

	reg := prometheus.NewRegistry()

	ledger := service.NewLedgerService(inv, hist, checkpoint, logger, service.WithMetrics(reg))
	catalog := service.NewCatalogService(inv)
	history := service.NewHistoryService(hist)

	if !restored && cfg.SeedCatalog {
		n := seedCatalog(ctx, ledger, logger)
		logger.Info("seeded default catalog", zap.Int("titles", n))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheus(reg)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Deps{
		Ledger:       ledger,
		Catalog:      catalog,
		History:      history,
		Snapshotter:  snaps,
		AdminPasskey: cfg.AdminPasskey,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Port)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal("server stopped unexpectedly", zap.Error(err))
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	// Final checkpoint so nothing borrowed since the last save is lost.
	if err := checkpoint.SaveNow(shutdownCtx); err != nil {
		logger.Error("final checkpoint failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", zap.Error(err))
	}
}

// newSnapshotter builds the configured checkpoint backend. The returned *sql.DB
// is non-nil only for the postgres backend and must be closed by the caller.
func newSnapshotter(ctx context.Context, cfg *config.AppConfig) (storage.Snapshotter, *sql.DB, error) {
	switch cfg.Checkpoint.Backend {
	case "file":
		s, err := storage.NewFile(cfg.Checkpoint.Dir)
		return s, nil, err
	case "minio":
		s, err := storage.NewMinIO(cfg.MinIO)
		return s, nil, err
	case "postgres":
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		s := storagepg.New(db)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown checkpoint backend %q", cfg.Checkpoint.Backend)
	}
}

func seedCatalog(ctx context.Context, ledger service.LedgerService, logger *zap.Logger) int {
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
			logger.Warn("failed to seed title", zap.String("title", e.Title), zap.Error(err))
			continue
		}
		n++
	}
	return n
}
