package reread

import (
	"context"
	"testing"
	"time"

	"github.com/readshelf/core/internal/database/dbtest"
	"github.com/readshelf/core/internal/modules/account/preferences"
	"github.com/readshelf/core/internal/modules/library/catalog"
	"github.com/readshelf/core/internal/modules/reader/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReReadAgainstDatabase(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.SeedSeries(t, db, "Planetes",
		dbtest.VolumeSeed{Number: 1, Chapters: []dbtest.ChapterSeed{{Pages: 60, SortOrder: 1}, {Pages: 40, SortOrder: 2}}},
		dbtest.VolumeSeed{Number: 2, Chapters: []dbtest.ChapterSeed{{Pages: 10, SortOrder: 1}}},
	)
	ctx := context.Background()
	const user = 1

	catalogSvc := catalog.NewService(db)
	prefs := preferences.NewService(db)
	_, err := prefs.Update(ctx, user, preferences.UpdatePreferencesDTO{PromptForRereadsAfter: 30})
	require.NoError(t, err)

	svc := NewService(catalogSvc, progress.NewService(db, catalogSvc), prefs)
	svc.now = func() time.Time { return now }

	v, err := svc.CheckSeriesForReRead(ctx, user, f.Series.ID, 0)
	require.NoError(t, err)
	assert.False(t, v.ShouldPrompt)
	assert.Equal(t, f.Chapters[0][0].ID, refID(v.ChapterOnContinue))
	assert.Equal(t, f.Library.ID, v.ChapterOnContinue.LibraryID)

	// volume one finished long ago, volume two untouched
	dbtest.SeedProgress(t, db, user, f.Chapters[0][0], f.Library.ID, 60, *daysAgo(45))
	dbtest.SeedProgress(t, db, user, f.Chapters[0][1], f.Library.ID, 40, *daysAgo(45))

	v, err = svc.CheckSeriesForReRead(ctx, user, f.Series.ID, f.Library.ID)
	require.NoError(t, err)
	assert.True(t, v.ShouldPrompt)
	assert.True(t, v.TimePrompt)
	assert.Equal(t, 45, v.DaysSinceLastRead)
	assert.Equal(t, f.Chapters[1][0].ID, refID(v.ChapterOnContinue))
	assert.Equal(t, f.Chapters[0][1].ID, refID(v.ChapterOnReread))

	v, err = svc.CheckVolumeForReRead(ctx, user, f.Volumes[0].ID, f.Series.ID, f.Library.ID)
	require.NoError(t, err)
	assert.True(t, v.FullReread)
	assert.Equal(t, "Volume 1", v.ChapterOnReread.Label)

	v, err = svc.CheckChapterForReRead(ctx, user, f.Chapters[1][0].ID, f.Series.ID, f.Library.ID)
	require.NoError(t, err)
	assert.False(t, v.ShouldPrompt)
	assert.Nil(t, v.ChapterOnReread)

	dbtest.SeedProgress(t, db, user, f.Chapters[1][0], f.Library.ID, 10, *daysAgo(1))
	v, err = svc.CheckSeriesForReRead(ctx, user, f.Series.ID, f.Library.ID)
	require.NoError(t, err)
	assert.True(t, v.FullReread)
	assert.Equal(t, "Planetes", v.ChapterOnReread.Label)
	assert.Equal(t, f.Chapters[0][0].ID, refID(v.ChapterOnReread))
	assert.Equal(t, 1, v.DaysSinceLastRead)

	v, err = svc.CheckSeriesForReRead(ctx, user, 9999, 0)
	require.NoError(t, err)
	assert.Equal(t, Verdict{}, v)
}
