// Package storagetest stellt eine migrierte In-Memory-Datenbank für Tests bereit.
package storagetest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"publication-portal/models"
	"publication-portal/storage"
)

// OpenSQLite öffnet eine frische SQLite-Datenbank im Speicher mit aktivierten
// Fremdschlüsseln und legt das Schema an. Eine einzige Verbindung, damit alle
// Abfragen dieselbe Datenbank sehen.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), storage.NewGormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Fixture ist der kleine Standarddatensatz vieler Tests: ein Lehrstuhl,
// zwei Lehrende (IDs 1 und 2) und eine Zeitschrift (ID 1, "Вестник науки").
type Fixture struct {
	Department models.Department
	Teachers   []models.Teacher
	Journal    models.Journal
}

// SeedFixture legt den Standarddatensatz an.
func SeedFixture(t testing.TB, db *gorm.DB) Fixture {
	t.Helper()
	f := Fixture{
		Department: models.Department{ID: 1, Name: "ИТ", Profile: "Информационные технологии"},
		Journal:    models.Journal{ID: 1, Name: "Вестник науки", Rating: "ВАК", Publisher: "Наука-Пресс", IssnIsbn: "1234-5678"},
	}
	mustCreate(t, db, &f.Department)
	f.Teachers = []models.Teacher{
		{ID: 1, FullName: "Иванов И.И.", DepartmentID: 1, Position: "Доцент", Degree: "к.т.н."},
		{ID: 2, FullName: "Петров П.П.", DepartmentID: 1, Position: "Профессор", Degree: "д.т.н."},
	}
	mustCreate(t, db, &f.Teachers)
	mustCreate(t, db, &f.Journal)
	return f
}

// AddPublication legt eine Publikation samt Autorenverknüpfungen direkt an.
func AddPublication(t testing.TB, db *gorm.DB, pub models.Publication, teacherIDs ...uint) models.Publication {
	t.Helper()
	if pub.Version == 0 {
		pub.Version = 1
	}
	mustCreate(t, db, &pub)
	for _, id := range teacherIDs {
		mustCreate(t, db, &models.PublicationAuthor{PublicationID: pub.ID, TeacherID: id})
	}
	return pub
}

func mustCreate(t testing.TB, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}
