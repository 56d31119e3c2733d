package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"publication-portal/models"
)

// DirectoryService liefert die Auswahllisten für Lehrende und Zeitschriften.
type DirectoryService struct {
	DB *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{DB: db}
}

func (s *DirectoryService) Teachers(ctx context.Context) ([]models.TeacherOption, error) {
	teachers := []models.TeacherOption{}
	err := s.DB.WithContext(ctx).Model(&models.Teacher{}).
		Select("teacher_id, full_name").
		Order("teacher_id").
		Scan(&teachers).Error
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

func (s *DirectoryService) Journals(ctx context.Context) ([]models.JournalOption, error) {
	journals := []models.JournalOption{}
	err := s.DB.WithContext(ctx).Model(&models.Journal{}).
		Select("journal_id, name").
		Order("journal_id").
		Scan(&journals).Error
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	return journals, nil
}
