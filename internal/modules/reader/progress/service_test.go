package progress

import (
	"context"
	"testing"
	"time"

	"github.com/readshelf/core/internal/database/dbtest"
	"github.com/readshelf/core/internal/models"
	"github.com/readshelf/core/internal/modules/library/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB, dbtest.Fixture) {
	t.Helper()
	db := dbtest.New(t)
	f := dbtest.SeedSeries(t, db, "Dorohedoro",
		dbtest.VolumeSeed{Number: 1, Chapters: []dbtest.ChapterSeed{{Pages: 20, SortOrder: 1}, {Pages: 30, SortOrder: 2}}},
		dbtest.VolumeSeed{Number: 2, Chapters: []dbtest.ChapterSeed{{Pages: 25, SortOrder: 1}}},
	)
	return NewService(db, catalog.NewService(db)), db, f
}

func TestLatestProgress(t *testing.T) {
	svc, db, f := newService(t)
	ctx := context.Background()
	older := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	latest, err := svc.GetLatestProgressForSeries(ctx, f.Series.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, latest)

	dbtest.SeedProgress(t, db, 1, f.Chapters[0][0], f.Library.ID, 20, older)
	dbtest.SeedProgress(t, db, 1, f.Chapters[1][0], f.Library.ID, 3, newer)
	dbtest.SeedProgress(t, db, 2, f.Chapters[0][1], f.Library.ID, 3, newer.Add(time.Hour))

	latest, err = svc.GetLatestProgressForSeries(ctx, f.Series.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, newer.Equal(*latest))

	latest, err = svc.GetLatestProgressForVolume(ctx, f.Volumes[0].ID, 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, older.Equal(*latest))

	latest, err = svc.GetLatestProgressForChapter(ctx, f.Chapters[0][1].ID, 1)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestAnyUserProgressForSeries(t *testing.T) {
	svc, db, f := newService(t)
	ctx := context.Background()

	ok, err := svc.AnyUserProgressForSeries(ctx, f.Series.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	dbtest.SeedProgress(t, db, 1, f.Chapters[0][0], f.Library.ID, 0, time.Now())
	ok, err = svc.AnyUserProgressForSeries(ctx, f.Series.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok, "a zero-page row is not progress")

	dbtest.SeedProgress(t, db, 1, f.Chapters[0][1], f.Library.ID, 2, time.Now())
	ok, err = svc.AnyUserProgressForSeries(ctx, f.Series.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSaveClampsAndUpserts(t *testing.T) {
	svc, db, f := newService(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }
	ch := f.Chapters[0][1]

	row, err := svc.Save(ctx, 1, SaveProgressDTO{ChapterID: ch.ID, PageNum: 500})
	require.NoError(t, err)
	assert.Equal(t, 30, row.PagesRead)
	assert.Equal(t, f.Library.ID, row.LibraryID)
	assert.Equal(t, ch.VolumeID, row.VolumeID)
	assert.Equal(t, ch.SeriesID, row.SeriesID)

	later := at.Add(time.Hour)
	svc.now = func() time.Time { return later }
	_, err = svc.Save(ctx, 1, SaveProgressDTO{ChapterID: ch.ID, PageNum: -4})
	require.NoError(t, err)

	var rows []models.ProgressModel
	require.NoError(t, db.Where("user_id = ? AND chapter_id = ?", 1, ch.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].PagesRead)
	assert.True(t, later.Equal(rows[0].LastReadAt))
}

func TestSaveUnknownChapter(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Save(context.Background(), 1, SaveProgressDTO{ChapterID: 999, PageNum: 1})
	assert.ErrorIs(t, err, ErrChapterNotFound)
}
