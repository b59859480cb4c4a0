package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/kicker-tournament/brackets"
	"github.com/Dosada05/kicker-tournament/config"
	"github.com/Dosada05/kicker-tournament/db"
	"github.com/Dosada05/kicker-tournament/handlers"
	"github.com/Dosada05/kicker-tournament/repositories"
	api "github.com/Dosada05/kicker-tournament/routes"
	"github.com/Dosada05/kicker-tournament/services"
	"github.com/Dosada05/kicker-tournament/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// @title Kicker Tournament API
// @version 1.0
// @description Групповой этап, таблицы и KO-сетка турнира по настольному футболу.
// @BasePath /api
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
		slog.Bool("roster", cfg.RosterDatabaseURL != ""),
		slog.Bool("snapshots", cfg.SnapshotsEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище турниров
	var storeRepo repositories.StoreRepository
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		storeRepo = repositories.NewMemoryStoreRepository()
		logger.Warn("using in-memory store, tournaments are lost on restart")
	default:
		dbConn, err := db.Connect(cfg.DatabaseURL, 10, 5*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer closeDB(logger, "store", dbConn)
		if err := repositories.EnsureStoreSchema(ctx, dbConn); err != nil {
			return err
		}
		storeRepo = repositories.NewPostgresStoreRepository(dbConn)
		logger.Info("database connection established")
	}

	// База команд (опционально)
	var rosterRepo repositories.TeamRosterRepository
	if cfg.RosterDatabaseURL != "" {
		rosterConn, err := db.Connect(cfg.RosterDatabaseURL, 5, 5*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to team database: %w", err)
		}
		defer closeDB(logger, "roster", rosterConn)
		rosterRepo = repositories.NewPostgresTeamRosterRepository(rosterConn)
		logger.Info("team database connection established")
	}

	// Cloudflare R2 для снимков (опционально)
	var uploader storage.FileUploader
	if cfg.SnapshotsEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	seed := time.Now().UnixNano()
	if cfg.ScheduleSeed != nil {
		seed = *cfg.ScheduleSeed
	}
	rng := rand.New(rand.NewSource(seed))

	wsHub := brackets.NewHub()

	tournamentService := services.NewTournamentService(storeRepo, rosterRepo, rng, wsHub, logger)
	backupService := services.NewBackupService(storeRepo, uploader, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.CORSAllowedOrigins,
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewAdminHandler(tournamentService, backupService),
		handlers.NewWebSocketHandler(wsHub, tournamentService),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})

	if uploader != nil {
		g.Go(func() error {
			runSnapshots(gctx, logger, backupService, cfg.SnapshotInterval)
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// runSnapshots uploads a snapshot every interval until ctx is done.
func runSnapshots(ctx context.Context, logger *slog.Logger, backup services.BackupService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("snapshot scheduler started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := backup.Snapshot(ctx); err != nil {
				logger.Error("scheduled snapshot failed", slog.Any("error", err))
			}
		}
	}
}

func closeDB(logger *slog.Logger, name string, conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.String("db", name), slog.Any("error", err))
		return
	}
	logger.Info("database connection closed", slog.String("db", name))
}
