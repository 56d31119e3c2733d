package main

import (
	"context"
	"log"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"publication-portal/config"
	"publication-portal/routes"
	"publication-portal/services"
	"publication-portal/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database
	db, err := storage.Open(cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Running database auto-migration...")
	if err := storage.Migrate(db); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Seeding
	if cfg.SeedOnStartup {
		now := uint64(time.Now().UnixNano())
		rng := rand.New(rand.NewPCG(now, now>>32))
		if _, err := storage.SeedDefaults(context.Background(), db, rng, logging); err != nil {
			logging.Warn("Failed to seed default data", zap.Error(err))
		}
	}

	// Setup Services
	publications := services.NewPublicationService(db, logging, cfg.MaxPageSize)
	directory := services.NewDirectoryService(db)

	// Setup Router
	router := routes.NewRouter(routes.Deps{
		DB:           db,
		Publications: publications,
		Directory:    directory,
		Logger:       logging,
	})

	// Setup Cron
	if cfg.SnapshotsEnabled() {
		store, err := storage.NewS3Store(context.Background(), cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		snapshots := services.NewSnapshotService(db, store, logging, cfg.SnapshotKeep)

		cronScheduler := cron.New()
		_, err = cronScheduler.AddFunc(cfg.SnapshotCron, func() {
			logging.Info("Running scheduled catalog snapshot...")
			key, err := snapshots.Run(context.Background())
			if err != nil {
				logging.Error("Snapshot job failed", zap.Error(err))
				return
			}
			logging.Info("Snapshot job completed", zap.String("key", key))
			routes.SnapshotsUploaded.Inc()
		})
		if err != nil {
			logging.Fatal("Invalid SNAPSHOT_CRON", zap.String("schedule", cfg.SnapshotCron), zap.Error(err))
		}
		cronScheduler.Start()
		logging.Info("Catalog snapshots scheduled",
			zap.String("schedule", cfg.SnapshotCron),
			zap.String("bucket", cfg.SnapshotBucket))
	}

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}
