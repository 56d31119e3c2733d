package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	// DatabaseURL hat Vorrang vor den einzelnen DB_*-Feldern.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	MaxPageSize int    `envconfig:"MAX_PAGE_SIZE" default:"100"`

	SeedOnStartup bool `envconfig:"SEED_ON_STARTUP" default:"true"`

	// Katalog-Snapshots nach S3; deaktiviert, solange kein Bucket gesetzt ist.
	SnapshotCron   string `envconfig:"SNAPSHOT_CRON" default:"0 3 * * *"`
	SnapshotBucket string `envconfig:"SNAPSHOT_BUCKET"`
	SnapshotKeep   int    `envconfig:"SNAPSHOT_KEEP" default:"7"`
	S3URL          string `envconfig:"S3_URL"`
	S3Region       string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Key          string `envconfig:"S3_KEY"`
	S3Secret       string `envconfig:"S3_SECRET"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// SnapshotsEnabled meldet, ob der Snapshot-Export konfiguriert ist.
func (c *Config) SnapshotsEnabled() bool {
	return c.SnapshotBucket != ""
}

// Validate prüft Abhängigkeiten zwischen Feldern, die envconfig nicht ausdrücken kann.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && (c.DBHost == "" || c.DBUser == "" || c.DBName == "") {
		return errors.New("either DATABASE_URL or DB_HOST, DB_USER and DB_NAME must be set")
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("MAX_PAGE_SIZE must be positive, got %d", c.MaxPageSize)
	}
	if c.SnapshotsEnabled() && c.SnapshotKeep < 1 {
		return fmt.Errorf("SNAPSHOT_KEEP must be positive, got %d", c.SnapshotKeep)
	}
	return nil
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
