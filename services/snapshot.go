package services

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"publication-portal/models"
	"publication-portal/storage"
)

const snapshotPrefix = "snapshots/"

// ObjectStore ist der Teil von storage.S3Store, den der Snapshot-Export braucht.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// Snapshot ist der Inhalt einer Exportdatei.
type Snapshot struct {
	GeneratedAt  time.Time      `json:"generatedAt"`
	TotalCount   int            `json:"totalCount"`
	Publications []SnapshotItem `json:"publications"`
}

// SnapshotItem ist eine Publikation samt fertig formatierter Literaturangabe.
type SnapshotItem struct {
	models.PublicationDTO
	Reference string `json:"reference"`
}

// SnapshotService exportiert den gesamten Katalog als gzip-JSON in einen Bucket.
type SnapshotService struct {
	DB        *gorm.DB
	Store     ObjectStore
	Logger    *zap.Logger
	Keep      int
	BatchSize int
	Now       func() time.Time
}

// NewSnapshotService erstellt eine neue Instanz des SnapshotService.
func NewSnapshotService(db *gorm.DB, store ObjectStore, logger *zap.Logger, keep int) *SnapshotService {
	return &SnapshotService{
		DB:        db,
		Store:     store,
		Logger:    logger,
		Keep:      keep,
		BatchSize: MaxPageSize,
		Now:       time.Now,
	}
}

// Build lädt alle Publikationen seitenweise in derselben Reihenfolge wie die Liste.
func (s *SnapshotService) Build(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{GeneratedAt: s.Now().UTC(), Publications: []SnapshotItem{}}
	db := s.DB.WithContext(ctx)

	for offset := 0; ; offset += s.BatchSize {
		var pubs []models.Publication
		err := db.Joins("Journal").
			Order("publications.year desc, publications.title asc, publications.publication_id asc").
			Offset(offset).
			Limit(s.BatchSize).
			Find(&pubs).Error
		if err != nil {
			return snap, fmt.Errorf("load snapshot batch at %d: %w", offset, err)
		}
		dtos, err := project(db, pubs)
		if err != nil {
			return snap, err
		}
		for _, dto := range dtos {
			snap.Publications = append(snap.Publications, SnapshotItem{PublicationDTO: dto, Reference: FormatReference(dto)})
		}
		if len(pubs) < s.BatchSize {
			break
		}
	}
	snap.TotalCount = len(snap.Publications)
	return snap, nil
}

// Encode serialisiert einen Snapshot als gzip-komprimiertes JSON.
func Encode(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gz).Encode(snap); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run erstellt einen Snapshot, lädt ihn hoch und rotiert alte Exporte.
// Gibt den Objektschlüssel zurück.
func (s *SnapshotService) Run(ctx context.Context) (string, error) {
	snap, err := s.Build(ctx)
	if err != nil {
		return "", err
	}
	data, err := Encode(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%spublications-%s.json.gz", snapshotPrefix, snap.GeneratedAt.Format("2006-01-02T15-04-05Z"))
	if err := s.Store.Upload(ctx, key, data, "application/gzip"); err != nil {
		return "", fmt.Errorf("upload snapshot %s: %w", key, err)
	}
	s.Logger.Info("Catalog snapshot uploaded",
		zap.String("key", key),
		zap.Int("publications", snap.TotalCount),
		zap.Int("bytes", len(data)))

	if err := s.rotate(ctx); err != nil {
		return key, fmt.Errorf("rotate snapshots: %w", err)
	}
	return key, nil
}

// rotate behält die Keep neuesten Snapshots. Fehler beim Löschen einzelner
// Objekte werden nur geloggt.
func (s *SnapshotService) rotate(ctx context.Context) error {
	objects, err := s.Store.List(ctx, snapshotPrefix)
	if err != nil {
		return err
	}

	var snaps []storage.ObjectInfo
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, ".json.gz") {
			snaps = append(snaps, obj)
		}
	}
	if len(snaps) <= s.Keep {
		return nil
	}

	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].LastModified.Equal(snaps[j].LastModified) {
			return snaps[i].Key > snaps[j].Key
		}
		return snaps[i].LastModified.After(snaps[j].LastModified)
	})
	for _, obj := range snaps[s.Keep:] {
		s.Logger.Info("Deleting old snapshot", zap.String("key", obj.Key))
		if err := s.Store.Delete(ctx, obj.Key); err != nil {
			s.Logger.Warn("Failed to delete old snapshot", zap.String("key", obj.Key), zap.Error(err))
		}
	}
	return nil
}
