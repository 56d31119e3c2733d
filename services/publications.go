package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"publication-portal/models"
)

var (
	// ErrNotFound wird zurückgegeben, wenn die angefragte Publikation nicht existiert.
	ErrNotFound = errors.New("publication not found")
	// ErrConstraint deckt unbekannte Zeitschriften/Lehrende und doppelte Autoren ab.
	ErrConstraint = errors.New("constraint violation")
	// ErrConflict meldet eine zwischenzeitlich geänderte Publikation.
	ErrConflict = errors.New("publication was modified concurrently")
	// ErrProjection: Create hat gespeichert, die Publikation aber nicht zurückgelesen.
	ErrProjection = errors.New("could not load created publication")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PublicationService kapselt alle Lese- und Schreiboperationen auf Publikationen.
type PublicationService struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	MaxPageSize int
}

// NewPublicationService erstellt eine neue Instanz des PublicationService.
func NewPublicationService(db *gorm.DB, logger *zap.Logger, maxPageSize int) *PublicationService {
	if maxPageSize < 1 {
		maxPageSize = MaxPageSize
	}
	return &PublicationService{DB: db, Logger: logger, MaxPageSize: maxPageSize}
}

// NormalizePage klemmt Seitennummer und Seitengröße auf gültige Werte.
func (s *PublicationService) NormalizePage(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > s.MaxPageSize {
		pageSize = s.MaxPageSize
	}
	return pageNumber, pageSize
}

// List liefert eine Seite, sortiert nach Jahr absteigend und Titel aufsteigend,
// zusammen mit der Gesamtzahl aller Publikationen.
func (s *PublicationService) List(ctx context.Context, pageNumber, pageSize int) (models.PaginatedResult[models.PublicationDTO], error) {
	pageNumber, pageSize = s.NormalizePage(pageNumber, pageSize)
	result := models.PaginatedResult[models.PublicationDTO]{Items: []models.PublicationDTO{}}

	db := s.DB.WithContext(ctx)
	if err := db.Model(&models.Publication{}).Count(&result.TotalCount).Error; err != nil {
		return result, fmt.Errorf("count publications: %w", err)
	}

	// Seiten hinter dem Ende bleiben leer; verhindert auch einen Überlauf des Offsets.
	if int64(pageNumber-1) > result.TotalCount/int64(pageSize) {
		return result, nil
	}

	var pubs []models.Publication
	err := db.Joins("Journal").
		Order("publications.year desc, publications.title asc, publications.publication_id asc").
		Offset((pageNumber - 1) * pageSize).
		Limit(pageSize).
		Find(&pubs).Error
	if err != nil {
		return result, fmt.Errorf("list publications: %w", err)
	}

	items, err := project(db, pubs)
	if err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}

// Get liefert eine einzelne Publikation oder ErrNotFound.
func (s *PublicationService) Get(ctx context.Context, id uint) (models.PublicationDTO, error) {
	return getDTO(s.DB.WithContext(ctx), id)
}

// Create legt Publikation und Autorenverknüpfungen in einer Transaktion an und
// liefert die frisch projizierte Sicht zurück.
func (s *PublicationService) Create(ctx context.Context, in models.PublicationInput) (models.PublicationDTO, error) {
	pub := models.Publication{
		Title:     in.Title,
		Type:      in.Type,
		Year:      in.Year,
		DoiLink:   in.DoiLink,
		JournalID: in.JournalID,
		Version:   1,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&pub).Error; err != nil {
			return classify(err)
		}
		return insertAuthors(tx, pub.ID, in.AuthorTeacherIDs)
	})
	if err != nil {
		return models.PublicationDTO{}, fmt.Errorf("create publication: %w", err)
	}

	s.Logger.Info("Publication created",
		zap.Uint("id", pub.ID),
		zap.String("title", pub.Title),
		zap.Int("authors", len(in.AuthorTeacherIDs)))

	dto, err := getDTO(s.DB.WithContext(ctx), pub.ID)
	if err != nil {
		// Nach erfolgreichem Commit darf das nicht passieren.
		return models.PublicationDTO{}, fmt.Errorf("%w: publication %d: %w", ErrProjection, pub.ID, err)
	}
	return dto, nil
}

// Update ersetzt alle Felder und die komplette Autorenliste. expectedVersion == 0
// bedeutet: die beim Lesen gefundene Version wird verwendet.
func (s *PublicationService) Update(ctx context.Context, id uint, in models.PublicationInput, expectedVersion uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pub models.Publication
		if err := tx.First(&pub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if expectedVersion != 0 && expectedVersion != pub.Version {
			return ErrConflict
		}

		if err := updateFields(tx, id, pub.Version, in); err != nil {
			return err
		}

		if err := tx.Where("publication_id = ?", id).Delete(&models.PublicationAuthor{}).Error; err != nil {
			return err
		}
		return insertAuthors(tx, id, in.AuthorTeacherIDs)
	})
	if err != nil {
		return fmt.Errorf("update publication %d: %w", id, err)
	}
	return nil
}

// Delete entfernt die Publikation; die Autorenverknüpfungen löscht die Datenbank per Cascade.
func (s *PublicationService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Publication{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete publication %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// updateFields schreibt alle Felder und erhöht die Version, aber nur solange die
// Zeile noch version trägt. Sonst hat ein anderer Schreiber dazwischen committet.
func updateFields(tx *gorm.DB, id, version uint, in models.PublicationInput) error {
	res := tx.Model(&models.Publication{}).
		Where("publication_id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"title":      in.Title,
			"type":       in.Type,
			"year":       in.Year,
			"doi_link":   in.DoiLink,
			"journal_id": in.JournalID,
			"version":    version + 1,
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func insertAuthors(tx *gorm.DB, publicationID uint, teacherIDs []uint) error {
	if len(teacherIDs) == 0 {
		return nil
	}
	links := make([]models.PublicationAuthor, 0, len(teacherIDs))
	for _, teacherID := range teacherIDs {
		links = append(links, models.PublicationAuthor{PublicationID: publicationID, TeacherID: teacherID})
	}
	if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
		return classify(err)
	}
	return nil
}

// classify übersetzt Constraint-Fehler des Treibers in ErrConstraint.
func classify(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}
