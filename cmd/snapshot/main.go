// Command snapshot exportiert den Publikationskatalog einmalig nach S3 und
// rotiert alte Exporte. Gedacht für externe Scheduler (Kubernetes CronJob o.ä.).
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"publication-portal/config"
	"publication-portal/services"
	"publication-portal/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	logging.Info("Starte Snapshot-Export...")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	if !cfg.SnapshotsEnabled() {
		logging.Fatal("SNAPSHOT_BUCKET is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// 1. Datenbank
	db, err := storage.Open(cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 2. S3-Client
	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}

	// 3. Export, Upload und Rotation
	key, err := services.NewSnapshotService(db, store, logging, cfg.SnapshotKeep).Run(ctx)
	if err != nil {
		logging.Fatal("Snapshot export failed", zap.Error(err))
	}

	logging.Info("Snapshot-Export erfolgreich abgeschlossen.",
		zap.String("bucket", cfg.SnapshotBucket),
		zap.String("key", key))
}
