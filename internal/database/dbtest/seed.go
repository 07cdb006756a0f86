package dbtest

import (
	"testing"
	"time"

	"github.com/readshelf/core/internal/models"
	"gorm.io/gorm"
)

type ChapterSeed struct {
	Title     string
	Pages     int
	SortOrder float64
	Special   bool
}

type VolumeSeed struct {
	Name     string
	Number   float64
	Chapters []ChapterSeed
}

// Fixture is a seeded library/series tree. Chapters[i] belongs to Volumes[i].
type Fixture struct {
	Library  models.LibraryModel
	Series   models.SeriesModel
	Volumes  []models.VolumeModel
	Chapters [][]models.ChapterModel
}

// SeedSeries inserts one library holding one series built from volumes, in the given order.
func SeedSeries(t testing.TB, db *gorm.DB, name string, volumes ...VolumeSeed) Fixture {
	t.Helper()
	f := Fixture{Library: models.LibraryModel{Name: name + " library"}}
	must(t, db.Create(&f.Library).Error)

	f.Series = models.SeriesModel{LibraryID: f.Library.ID, Name: name}
	must(t, db.Create(&f.Series).Error)

	for _, vs := range volumes {
		vol := models.VolumeModel{SeriesID: f.Series.ID, Name: vs.Name, Number: vs.Number}
		must(t, db.Create(&vol).Error)

		chapters := make([]models.ChapterModel, 0, len(vs.Chapters))
		for _, cs := range vs.Chapters {
			ch := models.ChapterModel{
				VolumeID:  vol.ID,
				SeriesID:  f.Series.ID,
				Title:     cs.Title,
				Number:    cs.SortOrder,
				SortOrder: cs.SortOrder,
				IsSpecial: cs.Special,
				Pages:     cs.Pages,
			}
			must(t, db.Create(&ch).Error)
			vol.Pages += ch.Pages
			chapters = append(chapters, ch)
		}
		must(t, db.Model(&vol).Update("pages", vol.Pages).Error)
		f.Series.Pages += vol.Pages
		f.Volumes = append(f.Volumes, vol)
		f.Chapters = append(f.Chapters, chapters)
	}
	must(t, db.Model(&f.Series).Update("pages", f.Series.Pages).Error)
	return f
}

// SeedProgress records pagesRead for a chapter at the given time.
func SeedProgress(t testing.TB, db *gorm.DB, userID int, ch models.ChapterModel, libraryID, pagesRead int, at time.Time) {
	t.Helper()
	must(t, db.Create(&models.ProgressModel{
		UserID:     userID,
		ChapterID:  ch.ID,
		VolumeID:   ch.VolumeID,
		SeriesID:   ch.SeriesID,
		LibraryID:  libraryID,
		PagesRead:  pagesRead,
		LastReadAt: at,
	}).Error)
}

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}
