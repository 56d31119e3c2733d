package storage

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"publication-portal/models"
)

// SeedPublicationCount ist die Anzahl generierter Publikationen beim ersten Start.
const SeedPublicationCount = 100

var seedPublicationTypes = []string{"Статья", "Тезисы", "Монография"}

// SeedDefaults befüllt eine leere Datenbank mit Lehrstühlen, Lehrenden, Zeitschriften
// und generierten Publikationen. Enthält eine der Tabellen schon Zeilen, passiert
// nichts. Gibt zurück, ob geseedet wurde.
func SeedDefaults(ctx context.Context, db *gorm.DB, rng *rand.Rand, log *zap.Logger) (bool, error) {
	for _, model := range []any{&models.Publication{}, &models.Department{}, &models.Teacher{}, &models.Journal{}} {
		var count int64
		if err := db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return false, fmt.Errorf("count %T: %w", model, err)
		}
		if count > 0 {
			return false, nil
		}
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itDept := models.Department{Name: "Информационные технологии", Profile: "Разработка ПО и систем"}
		csDept := models.Department{Name: "Компьютерная безопасность", Profile: "Защита информации"}
		if err := tx.Create(&itDept).Error; err != nil {
			return err
		}
		if err := tx.Create(&csDept).Error; err != nil {
			return err
		}

		teachers := []models.Teacher{
			{FullName: "Иванов И. И.", DepartmentID: itDept.ID, Position: "Доцент", Degree: "к.т.н."},
			{FullName: "Петров П. П.", DepartmentID: itDept.ID, Position: "Профессор", Degree: "д.т.н."},
			{FullName: "Сидоров С. С.", DepartmentID: csDept.ID, Position: "Ст. преподаватель", Degree: "магистр"},
			{FullName: "Кузнецова А. В.", DepartmentID: csDept.ID, Position: "Ассистент", Degree: "—"},
			{FullName: "Смирнов А. Е.", DepartmentID: itDept.ID, Position: "Доцент", Degree: "к.т.н."},
			{FullName: "Васильева О. Н.", DepartmentID: csDept.ID, Position: "Профессор", Degree: "д.ф.-м.н."},
		}
		if err := tx.Create(&teachers).Error; err != nil {
			return err
		}

		journals := []models.Journal{
			{Name: "Вестник современной науки", Rating: "ВАК", Publisher: "Издательство 'Наука'", IssnIsbn: "1234-5678"},
			{Name: "IT-Conf Proceedings", Rating: "Международная", Publisher: "TechEvents", IssnIsbn: "9876-5432"},
			{Name: "Кибернетика и программирование", Rating: "Scopus", Publisher: "Cybernetics Inc.", IssnIsbn: "5555-4444"},
			{Name: "Вопросы философии", Rating: "РИНЦ", Publisher: "Академия", IssnIsbn: "1111-2222"},
		}
		if err := tx.Create(&journals).Error; err != nil {
			return err
		}

		publications := make([]models.Publication, 0, SeedPublicationCount)
		for i := 1; i <= SeedPublicationCount; i++ {
			publications = append(publications, models.Publication{
				Title:     fmt.Sprintf("Научная работа №%d", i),
				Type:      seedPublicationTypes[rng.IntN(len(seedPublicationTypes))],
				Year:      2020 + rng.IntN(5),
				DoiLink:   fmt.Sprintf("https://doi.org/10.1000/xyz%d", i),
				JournalID: journals[rng.IntN(len(journals))].ID,
				Version:   1,
			})
		}
		if err := tx.Create(&publications).Error; err != nil {
			return err
		}

		// 1 bis 3 verschiedene Autoren pro Publikation
		var links []models.PublicationAuthor
		for _, pub := range publications {
			authorCount := 1 + rng.IntN(3)
			for _, idx := range rng.Perm(len(teachers))[:authorCount] {
				links = append(links, models.PublicationAuthor{
					PublicationID: pub.ID,
					TeacherID:     teachers[idx].ID,
				})
			}
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return false, fmt.Errorf("seed defaults: %w", err)
	}

	log.Info("Default catalog seeded.", zap.Int("publications", SeedPublicationCount))
	return true, nil
}
