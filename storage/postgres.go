package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"publication-portal/config"
	"publication-portal/models"
)

// NewGormConfig liefert die gemeinsame GORM-Konfiguration. TranslateError sorgt
// dafür, dass Constraint-Verletzungen als gorm.ErrForeignKeyViolated bzw.
// gorm.ErrDuplicatedKey ankommen, unabhängig vom Treiber.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

// Open baut die Verbindung zur PostgreSQL-Datenbank auf und setzt die Pool-Grenzen.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	log.Info("Successfully connected to publications database.",
		zap.Int("max_open_conns", cfg.DBMaxOpenConns),
		zap.Int("max_idle_conns", cfg.DBMaxIdleConns))
	return db, nil
}

// Migrate legt alle Tabellen samt Fremdschlüsseln an. Eltern vor Kindern.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Department{},
		&models.Teacher{},
		&models.Journal{},
		&models.Publication{},
		&models.PublicationAuthor{},
	)
}

// Ping prüft, ob die Datenbank erreichbar ist.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
