package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"publication-portal/models"
	"publication-portal/storage/storagetest"
)

func TestDirectoryListsOptions(t *testing.T) {
	db := storagetest.OpenSQLite(t)
	storagetest.SeedFixture(t, db)
	svc := NewDirectoryService(db)

	teachers, err := svc.Teachers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.TeacherOption{
		{TeacherID: 1, FullName: "Иванов И.И."},
		{TeacherID: 2, FullName: "Петров П.П."},
	}, teachers)

	journals, err := svc.Journals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.JournalOption{{JournalID: 1, Name: "Вестник науки"}}, journals)
}

func TestDirectoryEmptyListsAreNotNil(t *testing.T) {
	svc := NewDirectoryService(storagetest.OpenSQLite(t))

	teachers, err := svc.Teachers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, teachers)
	assert.Empty(t, teachers)

	journals, err := svc.Journals(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, journals)
	assert.Empty(t, journals)
}
