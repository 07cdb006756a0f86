// Package reread decides whether a reader should be offered to reread a series, volume or chapter.
package reread

import (
	"context"
	"time"

	"github.com/readshelf/core/internal/modules/library/catalog"
)

// Catalog supplies entity projections with the user's pages read. Missing entities are nil.
type Catalog interface {
	SeriesProgress(ctx context.Context, seriesID, userID int) (*catalog.SeriesProgress, error)
	VolumeProgress(ctx context.Context, volumeID, userID int) (*catalog.VolumeProgress, error)
	ChapterProgress(ctx context.Context, chapterID, userID int) (*catalog.ChapterProgress, error)
	LibraryIDForSeries(ctx context.Context, seriesID int) (int, error)
}

// ProgressRepository answers when the user last read something.
type ProgressRepository interface {
	GetLatestProgressForSeries(ctx context.Context, seriesID, userID int) (*time.Time, error)
	GetLatestProgressForVolume(ctx context.Context, volumeID, userID int) (*time.Time, error)
	GetLatestProgressForChapter(ctx context.Context, chapterID, userID int) (*time.Time, error)
	AnyUserProgressForSeries(ctx context.Context, seriesID, userID int) (bool, error)
}

// Preferences yields the user's reread threshold in days; 0 disables time prompts.
type Preferences interface {
	PromptForRereadsAfter(ctx context.Context, userID int) (int, error)
}

// Service never writes; every lookup error is returned unchanged.
type Service struct {
	catalog  Catalog
	progress ProgressRepository
	prefs    Preferences
	now      func() time.Time
}

func NewService(c Catalog, p ProgressRepository, prefs Preferences) *Service {
	return &Service{catalog: c, progress: p, prefs: prefs, now: time.Now}
}

type latestFunc func(ctx context.Context) (*time.Time, error)

// CheckSeriesForReRead evaluates a whole series.
func (s *Service) CheckSeriesForReRead(ctx context.Context, userID, seriesID, libraryID int) (Verdict, error) {
	series, err := s.catalog.SeriesProgress(ctx, seriesID, userID)
	if err != nil {
		return Verdict{}, err
	}
	if series == nil || len(series.Chapters) == 0 {
		return Verdict{}, nil
	}
	if libraryID == 0 {
		libraryID = series.LibraryID
	}
	chapters := series.Chapters

	started, err := s.progress.AnyUserProgressForSeries(ctx, seriesID, userID)
	if err != nil {
		return Verdict{}, err
	}
	if !started {
		return Verdict{ChapterOnContinue: newRef(chapters[0], libraryID)}, nil
	}

	latest := func(ctx context.Context) (*time.Time, error) {
		return s.progress.GetLatestProgressForSeries(ctx, seriesID, userID)
	}
	if series.FullyRead() {
		return s.fullReread(ctx, chapters, series.Name, libraryID, latest)
	}
	return s.evaluate(ctx, userID, chapters, libraryID, true, latest)
}

// CheckVolumeForReRead evaluates one volume. A volume outside seriesID (when given) counts as missing.
func (s *Service) CheckVolumeForReRead(ctx context.Context, userID, volumeID, seriesID, libraryID int) (Verdict, error) {
	volume, err := s.catalog.VolumeProgress(ctx, volumeID, userID)
	if err != nil {
		return Verdict{}, err
	}
	if volume == nil || len(volume.Chapters) == 0 || (seriesID > 0 && volume.SeriesID != seriesID) {
		return Verdict{}, nil
	}
	if libraryID == 0 {
		libraryID = volume.LibraryID
	}
	chapters := volume.Chapters

	latest := func(ctx context.Context) (*time.Time, error) {
		return s.progress.GetLatestProgressForVolume(ctx, volumeID, userID)
	}
	if volume.PagesRead == 0 {
		last, err := latest(ctx)
		if err != nil {
			return Verdict{}, err
		}
		if last == nil {
			return Verdict{ChapterOnContinue: newRef(chapters[0], libraryID)}, nil
		}
	}
	if volume.FullyRead() {
		return s.fullReread(ctx, chapters, volume.Label(), libraryID, latest)
	}
	return s.evaluate(ctx, userID, chapters, libraryID, false, latest)
}

// CheckChapterForReRead evaluates a single chapter. A chapter outside seriesID (when given) counts as missing.
func (s *Service) CheckChapterForReRead(ctx context.Context, userID, chapterID, seriesID, libraryID int) (Verdict, error) {
	chapter, err := s.catalog.ChapterProgress(ctx, chapterID, userID)
	if err != nil {
		return Verdict{}, err
	}
	if chapter == nil || (seriesID > 0 && chapter.SeriesID != seriesID) {
		return Verdict{}, nil
	}
	if libraryID == 0 {
		if libraryID, err = s.catalog.LibraryIDForSeries(ctx, chapter.SeriesID); err != nil {
			return Verdict{}, err
		}
	}

	latest, err := s.progress.GetLatestProgressForChapter(ctx, chapterID, userID)
	if err != nil {
		return Verdict{}, err
	}
	ref := newRef(*chapter, libraryID)
	if chapter.PagesRead == 0 && latest == nil {
		return Verdict{ChapterOnContinue: ref}, nil
	}

	v := Verdict{ChapterOnContinue: ref}
	if latest != nil {
		v.DaysSinceLastRead = s.daysSince(*latest)
	}
	if chapter.FullyRead() {
		v.ShouldPrompt = true
		v.FullReread = true
		v.ChapterOnReread = ref
		return v, nil
	}
	return s.timeRule(ctx, userID, v, latest)
}

// fullReread offers the first chapter, labelled with the entity, once everything has been read.
func (s *Service) fullReread(ctx context.Context, chapters []catalog.ChapterProgress, label string, libraryID int, latest latestFunc) (Verdict, error) {
	last, err := latest(ctx)
	if err != nil {
		return Verdict{}, err
	}
	first := newRef(chapters[0], libraryID)
	v := Verdict{
		ShouldPrompt:      true,
		FullReread:        true,
		ChapterOnContinue: newRef(chapters[continuePoint(chapters)], libraryID),
		ChapterOnReread:   labelled(first, label),
	}
	if last != nil {
		v.DaysSinceLastRead = s.daysSince(*last)
	}
	return v, nil
}

// evaluate handles a started but unfinished series or volume.
func (s *Service) evaluate(ctx context.Context, userID int, chapters []catalog.ChapterProgress, libraryID int, preferPrevious bool, latest latestFunc) (Verdict, error) {
	idx := continuePoint(chapters)
	cont := newRef(chapters[idx], libraryID)
	v := Verdict{ChapterOnContinue: cont}

	if chapters[idx].FullyRead() {
		v.ShouldPrompt = true
		v.ChapterOnReread = cont
		return v, nil
	}

	last, err := latest(ctx)
	if err != nil {
		return Verdict{}, err
	}
	if last != nil {
		v.DaysSinceLastRead = s.daysSince(*last)
	}
	v, err = s.timeRule(ctx, userID, v, last)
	if err != nil || !v.TimePrompt {
		return v, err
	}
	if preferPrevious && idx > 0 && chapters[idx].PagesRead == 0 {
		v.ChapterOnReread = newRef(chapters[idx-1], libraryID)
	}
	return v, nil
}

// timeRule prompts when the last read is at least the user's threshold days old.
// v must already carry ChapterOnContinue and DaysSinceLastRead.
func (s *Service) timeRule(ctx context.Context, userID int, v Verdict, last *time.Time) (Verdict, error) {
	if last == nil {
		return v, nil
	}
	after, err := s.prefs.PromptForRereadsAfter(ctx, userID)
	if err != nil {
		return Verdict{}, err
	}
	if after > 0 && v.DaysSinceLastRead >= after {
		v.ShouldPrompt = true
		v.TimePrompt = true
		v.ChapterOnReread = v.ChapterOnContinue
	}
	return v, nil
}

func (s *Service) daysSince(t time.Time) int {
	d := s.now().UTC().Sub(t.UTC())
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// continuePoint returns the index of the first partially read chapter, else the first unfinished
// chapter, else 0.
func continuePoint(chapters []catalog.ChapterProgress) int {
	for i, c := range chapters {
		if c.PagesRead > 0 && c.PagesRead < c.Pages {
			return i
		}
	}
	for i, c := range chapters {
		if c.PagesRead < c.Pages {
			return i
		}
	}
	return 0
}
