package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"publication-portal/models"
	"publication-portal/storage/storagetest"
)

func newTestService(t *testing.T) (*PublicationService, *gorm.DB) {
	t.Helper()
	db := storagetest.OpenSQLite(t)
	storagetest.SeedFixture(t, db)
	return NewPublicationService(db, zap.NewNop(), MaxPageSize), db
}

func TestListReturnsJournalAndAuthorNames(t *testing.T) {
	svc, db := newTestService(t)
	storagetest.AddPublication(t, db, models.Publication{
		ID: 1, Title: "Тестовая статья", Type: "Статья", Year: 2024, DoiLink: "doi.org/123", JournalID: 1,
	}, 1, 2)

	res, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.TotalCount)
	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, uint(1), item.PublicationID)
	assert.Equal(t, "Вестник науки", item.JournalName)
	assert.Equal(t, []uint{1, 2}, item.AuthorTeacherIDs)
	assert.Equal(t, []string{"Иванов И.И.", "Петров П.П."}, item.AuthorNames)
}

func TestListOrdersByYearDescThenTitle(t *testing.T) {
	svc, db := newTestService(t)
	for _, p := range []models.Publication{
		{Title: "Beta", Year: 2022},
		{Title: "Alpha", Year: 2022},
		{Title: "Gamma", Year: 2024},
		{Title: "Delta", Year: 2020},
		{Title: "Alpha", Year: 2024},
	} {
		p.JournalID = 1
		storagetest.AddPublication(t, db, p)
	}

	res, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)

	var got []string
	for _, it := range res.Items {
		got = append(got, fmt.Sprintf("%d %s", it.Year, it.Title))
	}
	assert.Equal(t, []string{"2024 Alpha", "2024 Gamma", "2022 Alpha", "2022 Beta", "2020 Delta"}, got)
}

func TestListTotalCountIndependentOfPage(t *testing.T) {
	svc, db := newTestService(t)
	for i := 0; i < 7; i++ {
		storagetest.AddPublication(t, db, models.Publication{Title: fmt.Sprintf("P%02d", i), Year: 2000 + i, JournalID: 1})
	}

	seen := map[uint]bool{}
	for page := 1; page <= 4; page++ {
		res, err := svc.List(context.Background(), page, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(7), res.TotalCount, "page %d", page)
		for _, it := range res.Items {
			assert.False(t, seen[it.PublicationID], "publication %d on two pages", it.PublicationID)
			seen[it.PublicationID] = true
		}
		if page == 3 {
			assert.Len(t, res.Items, 1)
		}
		if page == 4 {
			assert.NotNil(t, res.Items)
			assert.Empty(t, res.Items)
		}
	}
	assert.Len(t, seen, 7)
}

func TestListPastTheEndIsEmpty(t *testing.T) {
	svc, db := newTestService(t)
	storagetest.AddPublication(t, db, models.Publication{Title: "A", Year: 2024, JournalID: 1})

	for _, page := range []int{2, 1000, math.MaxInt} {
		res, err := svc.List(context.Background(), page, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.TotalCount, "page %d", page)
		assert.NotNil(t, res.Items, "page %d", page)
		assert.Empty(t, res.Items, "page %d", page)
	}
}

func TestNormalizePage(t *testing.T) {
	svc := NewPublicationService(nil, zap.NewNop(), 50)
	cases := []struct {
		number, size         int
		wantNumber, wantSize int
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-3, 10, 1, 10},
		{2, 0, 2, DefaultPageSize},
		{2, -1, 2, DefaultPageSize},
		{2, 500, 2, 50},
	}
	for _, tc := range cases {
		n, s := svc.NormalizePage(tc.number, tc.size)
		assert.Equal(t, tc.wantNumber, n)
		assert.Equal(t, tc.wantSize, s)
	}
}

func TestGetUnknownPublication(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	in := models.PublicationInput{
		Title: "Новая публикация", Type: "Монография", Year: 2025, DoiLink: "test.doi/1",
		JournalID: 1, AuthorTeacherIDs: []uint{2, 1},
	}

	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotZero(t, created.PublicationID)
	assert.Equal(t, "Вестник науки", created.JournalName)
	assert.Equal(t, uint(1), created.Version)

	got, err := svc.Get(context.Background(), created.PublicationID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Type, got.Type)
	assert.Equal(t, in.Year, got.Year)
	assert.Equal(t, in.DoiLink, got.DoiLink)
	assert.ElementsMatch(t, in.AuthorTeacherIDs, got.AuthorTeacherIDs)
}

func TestCreateWithoutAuthors(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(context.Background(), models.PublicationInput{Title: "Solo", Type: "Тезисы", JournalID: 1})
	require.NoError(t, err)
	assert.NotNil(t, created.AuthorTeacherIDs)
	assert.Empty(t, created.AuthorTeacherIDs)
	assert.Empty(t, created.AuthorNames)
}

func TestCreateRejectsInvalidReferences(t *testing.T) {
	cases := map[string]models.PublicationInput{
		"duplicate author": {Title: "Dup", Type: "Статья", JournalID: 1, AuthorTeacherIDs: []uint{1, 1}},
		"unknown teacher":  {Title: "Ghost", Type: "Статья", JournalID: 1, AuthorTeacherIDs: []uint{1, 77}},
		"unknown journal":  {Title: "Nowhere", Type: "Статья", JournalID: 42},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			svc, db := newTestService(t)
			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, ErrConstraint)

			var pubs, links int64
			db.Model(&models.Publication{}).Count(&pubs)
			db.Model(&models.PublicationAuthor{}).Count(&links)
			assert.Zero(t, pubs, "publication must be rolled back")
			assert.Zero(t, links)
		})
	}
}

func TestUpdateReplacesAuthors(t *testing.T) {
	svc, db := newTestService(t)
	pub := storagetest.AddPublication(t, db, models.Publication{Title: "Old", Type: "Статья", Year: 2024, JournalID: 1}, 1, 2)

	err := svc.Update(context.Background(), pub.ID, models.PublicationInput{
		Title: "Обновленный заголовок", Type: "Статья", Year: 2026, DoiLink: "updated.doi/2",
		JournalID: 1, AuthorTeacherIDs: []uint{2},
	}, 0)
	require.NoError(t, err)

	var links []models.PublicationAuthor
	require.NoError(t, db.Where("publication_id = ?", pub.ID).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, uint(2), links[0].TeacherID)

	got, err := svc.Get(context.Background(), pub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Обновленный заголовок", got.Title)
	assert.Equal(t, 2026, got.Year)
	assert.Equal(t, "updated.doi/2", got.DoiLink)
	assert.Equal(t, uint(2), got.Version)
}

func TestUpdateUnknownPublication(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Update(context.Background(), 999, models.PublicationInput{Title: "x", Type: "y", JournalID: 1}, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateWithStaleVersionConflicts(t *testing.T) {
	svc, db := newTestService(t)
	pub := storagetest.AddPublication(t, db, models.Publication{Title: "Old", Type: "Статья", JournalID: 1}, 1)
	in := models.PublicationInput{Title: "New", Type: "Статья", JournalID: 1, AuthorTeacherIDs: []uint{2}}

	require.NoError(t, svc.Update(context.Background(), pub.ID, in, 1))

	err := svc.Update(context.Background(), pub.ID, in, 1)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.Get(context.Background(), pub.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.Version)
}

func TestUpdateFieldsDetectsConcurrentWrite(t *testing.T) {
	_, db := newTestService(t)
	pub := storagetest.AddPublication(t, db, models.Publication{Title: "Old", Type: "Статья", JournalID: 1})
	in := models.PublicationInput{Title: "Mine", Type: "Статья", JournalID: 1}

	// Ein anderer Schreiber committet zwischen Lesen und UPDATE.
	require.NoError(t, db.Model(&models.Publication{}).
		Where("publication_id = ?", pub.ID).
		Updates(map[string]any{"title": "Theirs", "version": 2}).Error)

	err := updateFields(db, pub.ID, 1, in)
	assert.ErrorIs(t, err, ErrConflict)

	var got models.Publication
	require.NoError(t, db.First(&got, pub.ID).Error)
	assert.Equal(t, "Theirs", got.Title)
	assert.Equal(t, uint(2), got.Version)

	require.NoError(t, updateFields(db, pub.ID, 2, in))
	require.NoError(t, db.First(&got, pub.ID).Error)
	assert.Equal(t, "Mine", got.Title)
	assert.Equal(t, uint(3), got.Version)
}

func TestUpdateRollsBackOnDuplicateAuthors(t *testing.T) {
	svc, db := newTestService(t)
	pub := storagetest.AddPublication(t, db, models.Publication{Title: "Old", Type: "Статья", JournalID: 1}, 1)

	err := svc.Update(context.Background(), pub.ID, models.PublicationInput{
		Title: "New", Type: "Статья", JournalID: 1, AuthorTeacherIDs: []uint{2, 2},
	}, 0)
	assert.ErrorIs(t, err, ErrConstraint)

	got, err := svc.Get(context.Background(), pub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Title)
	assert.Equal(t, []uint{1}, got.AuthorTeacherIDs)
}

func TestDeleteLeavesUnrelatedRecords(t *testing.T) {
	svc, db := newTestService(t)
	doomed := storagetest.AddPublication(t, db, models.Publication{Title: "A", JournalID: 1}, 1, 2)
	kept := storagetest.AddPublication(t, db, models.Publication{Title: "B", JournalID: 1}, 2)

	require.NoError(t, svc.Delete(context.Background(), doomed.ID))

	_, err := svc.Get(context.Background(), doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(context.Background(), kept.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, got.AuthorTeacherIDs)

	var links, teachers, journals int64
	db.Model(&models.PublicationAuthor{}).Count(&links)
	db.Model(&models.Teacher{}).Count(&teachers)
	db.Model(&models.Journal{}).Count(&journals)
	assert.Equal(t, int64(1), links)
	assert.Equal(t, int64(2), teachers)
	assert.Equal(t, int64(1), journals)
}

func TestDeleteUnknownPublication(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), 999), ErrNotFound)
}

func TestProjectKeepsAuthorListsAligned(t *testing.T) {
	svc, db := newTestService(t)
	extra := models.Teacher{ID: 3, FullName: "Сидоров С.С.", DepartmentID: 1}
	require.NoError(t, db.Create(&extra).Error)
	storagetest.AddPublication(t, db, models.Publication{Title: "A", JournalID: 1}, 3, 1, 2)

	res, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	names := map[uint]string{1: "Иванов И.И.", 2: "Петров П.П.", 3: "Сидоров С.С."}
	item := res.Items[0]
	require.Len(t, item.AuthorNames, len(item.AuthorTeacherIDs))
	for i, id := range item.AuthorTeacherIDs {
		assert.Equal(t, names[id], item.AuthorNames[i])
	}
	assert.True(t, sort.SliceIsSorted(item.AuthorTeacherIDs, func(i, j int) bool {
		return item.AuthorTeacherIDs[i] < item.AuthorTeacherIDs[j]
	}))
}
