package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"publication-portal/models"
)

type authorRow struct {
	PublicationID uint
	TeacherID     uint
	FullName      string
}

// getDTO lädt eine Publikation mit Zeitschrift und Autoren.
func getDTO(db *gorm.DB, id uint) (models.PublicationDTO, error) {
	var pub models.Publication
	err := db.Joins("Journal").
		Where("publications.publication_id = ?", id).
		Take(&pub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PublicationDTO{}, ErrNotFound
		}
		return models.PublicationDTO{}, fmt.Errorf("get publication %d: %w", id, err)
	}

	dtos, err := project(db, []models.Publication{pub})
	if err != nil {
		return models.PublicationDTO{}, err
	}
	return dtos[0], nil
}

// project wandelt Publikationen (mit bereits gejointer Zeitschrift) in DTOs um.
// Die Autoren aller Publikationen werden mit einer einzigen Abfrage geholt und
// nach TeacherID sortiert, damit IDs und Namen positionsgleich bleiben.
func project(db *gorm.DB, pubs []models.Publication) ([]models.PublicationDTO, error) {
	dtos := make([]models.PublicationDTO, 0, len(pubs))
	if len(pubs) == 0 {
		return dtos, nil
	}

	ids := make([]uint, 0, len(pubs))
	for _, p := range pubs {
		ids = append(ids, p.ID)
	}

	var rows []authorRow
	err := db.Table("publication_authors").
		Select("publication_authors.publication_id, teachers.teacher_id, teachers.full_name").
		Joins("JOIN teachers ON teachers.teacher_id = publication_authors.teacher_id").
		Where("publication_authors.publication_id IN ?", ids).
		Order("publication_authors.publication_id, teachers.teacher_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	byPublication := make(map[uint][]authorRow, len(pubs))
	for _, r := range rows {
		byPublication[r.PublicationID] = append(byPublication[r.PublicationID], r)
	}

	for _, p := range pubs {
		dto := models.PublicationDTO{
			PublicationID:    p.ID,
			Title:            p.Title,
			Type:             p.Type,
			Year:             p.Year,
			DoiLink:          p.DoiLink,
			JournalID:        p.JournalID,
			AuthorTeacherIDs: []uint{},
			AuthorNames:      []string{},
			Version:          p.Version,
		}
		if p.Journal != nil {
			dto.JournalName = p.Journal.Name
		}
		for _, a := range byPublication[p.ID] {
			dto.AuthorTeacherIDs = append(dto.AuthorTeacherIDs, a.TeacherID)
			dto.AuthorNames = append(dto.AuthorNames, a.FullName)
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}
